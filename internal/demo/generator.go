package demo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var customerNames = []string{
	"Restaurant A",
	"Restaurant B",
	"Hotel C",
	"Cafe D",
	"School Cafeteria E",
	"Hospital F",
}

// Generator creates randomized demo orders through the API.
type Generator struct {
	client *Client
	rand   *rand.Rand

	// Unique makes every run create a fresh customer (uuid-suffixed email)
	// instead of reusing one from the fixed name pool.
	Unique bool
}

// NewGenerator creates a Generator backed by the given API client.
func NewGenerator(client *Client) *Generator {
	return &Generator{
		client: client,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRandomOrder picks (or creates) a customer, selects up to three random
// products with random quantities and prices, and places the order. Returns
// the new order id.
func (g *Generator) CreateRandomOrder(ctx context.Context) (int64, error) {
	customerID, err := g.pickCustomer(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve customer: %w", err)
	}

	products, err := g.client.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("no products available; run the seed tool first")
	}

	items := g.randomItems(products)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.RequestedQuantity.Mul(item.UnitPrice))
	}

	order := Order{
		CustomerID:   customerID,
		OrderDate:    time.Now().Format("2006-01-02"),
		RequiredDate: g.randomFutureDate(30),
		TotalAmount:  total.Round(2),
		Status:       "pending",
		OrderItems:   items,
	}

	id, err := g.client.CreateOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// pickCustomer reuses an existing demo customer by email or creates one.
func (g *Generator) pickCustomer(ctx context.Context) (int64, error) {
	name := customerNames[g.rand.Intn(len(customerNames))]
	slug := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	email := slug + "@example.com"

	if g.Unique {
		name = fmt.Sprintf("%s %s", name, time.Now().Format("0102"))
		email = fmt.Sprintf("%s-%s@example.com", slug, uuid.NewString()[:8])
	} else {
		existing, err := g.client.FindCustomerByEmail(ctx, email)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.CustomerID, nil
		}
	}

	phone := fmt.Sprintf("13%09d", g.rand.Intn(1_000_000_000))
	return g.client.CreateCustomer(ctx, name, email, phone)
}

// randomItems picks 1-3 distinct products with random quantities (5-54) and
// unit prices (5.00-24.99).
func (g *Generator) randomItems(products []Product) []OrderItem {
	count := g.rand.Intn(3) + 1
	if count > len(products) {
		count = len(products)
	}

	picked := g.rand.Perm(len(products))[:count]
	items := make([]OrderItem, 0, count)
	for _, idx := range picked {
		qty := decimal.NewFromInt(int64(g.rand.Intn(50) + 5))
		price := decimal.NewFromFloat(g.rand.Float64()*20 + 5).Round(2)
		items = append(items, OrderItem{
			ProductID:         products[idx].ProductID,
			RequestedQuantity: qty,
			UnitPrice:         price,
		})
	}
	return items
}

// randomFutureDate returns a date 1..daysAhead days from now.
func (g *Generator) randomFutureDate(daysAhead int) string {
	days := g.rand.Intn(daysAhead) + 1
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
