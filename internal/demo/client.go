// Package demo drives the HTTP API the way a real integration would: it
// creates customers and orders through the public endpoints, never touching
// the database directly. The ordergen, orderscheduler, and ordercli commands
// are built on it.
package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client is a thin client for the Farmable HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Product is the wire shape of a product as returned by the API.
type Product struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	PackUnit    string `json:"pack_unit"`
}

// Customer is the wire shape of a customer as returned by the API.
type Customer struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// OrderItem is one line item in an order creation request.
type OrderItem struct {
	ProductID         int64           `json:"product_id"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

// Order is an order creation request.
type Order struct {
	CustomerID   int64           `json:"customer_id"`
	OrderDate    string          `json:"order_date"`
	RequiredDate string          `json:"required_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	OrderItems   []OrderItem     `json:"order_items"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	ID      int64           `json:"id"`
	Error   string          `json:"error"`
}

// ListProducts fetches all products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	env, err := c.get(ctx, "/api/products")
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FindCustomerByEmail looks up a customer by exact email. Returns nil when
// no customer matches.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	env, err := c.get(ctx, "/api/customers?email="+url.QueryEscape(email))
	if err != nil {
		return nil, err
	}
	var customers []Customer
	if err := json.Unmarshal(env.Data, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// CreateCustomer creates a customer and returns its id.
func (c *Client) CreateCustomer(ctx context.Context, name, email, phone string) (int64, error) {
	env, err := c.post(ctx, "/api/customers", map[string]string{
		"name":  name,
		"email": email,
		"phone": phone,
	})
	if err != nil {
		return 0, err
	}
	return env.ID, nil
}

// CreateOrder places an order and returns the new order id.
func (c *Client) CreateOrder(ctx context.Context, order Order) (int64, error) {
	env, err := c.post(ctx, "/api/orders", order)
	if err != nil {
		return 0, err
	}
	return env.ID, nil
}

func (c *Client) get(ctx context.Context, path string) (*apiEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any) (*apiEnvelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*apiEnvelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, env.Error)
	}
	return &env, nil
}
