package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmable/api/internal/database"
	"github.com/farmable/api/internal/enum"
	"github.com/farmable/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (int64, error)
}

// OrderStore defines the database methods needed by order read/update
// handlers. Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrdersWithCustomer(ctx context.Context) ([]database.OrderWithCustomerRow, error)
	GetOrderWithCustomer(ctx context.Context, orderID int64) (database.OrderWithCustomerRow, error)
	ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]database.OrderItemWithProductRow, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (int64, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore) *OrderHandler {
	return &OrderHandler{svc: svc, store: store}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /api/orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type createOrderRequest struct {
	CustomerID   int64                    `json:"customer_id"`
	OrderDate    string                   `json:"order_date"`
	RequiredDate string                   `json:"required_date"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	Status       string                   `json:"status"`
	OrderItems   []createOrderItemRequest `json:"order_items"`
}

type createOrderItemRequest struct {
	ProductID         int64           `json:"product_id"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderResponse struct {
	OrderID      int64               `json:"order_id"`
	CustomerID   int64               `json:"customer_id"`
	OrderDate    string              `json:"order_date"`
	RequiredDate *string             `json:"required_date"`
	TotalAmount  string              `json:"total_amount"`
	Status       string              `json:"status"`
	Customer     customerResponse    `json:"customer"`
	OrderItems   []orderItemResponse `json:"order_items,omitempty"`
}

type orderItemResponse struct {
	OrderItemID       int64           `json:"order_item_id"`
	OrderID           int64           `json:"order_id"`
	ProductID         int64           `json:"product_id"`
	RequestedQuantity string          `json:"requested_quantity"`
	FulfilledQuantity string          `json:"fulfilled_quantity"`
	RemainingQuantity string          `json:"remaining_quantity"`
	UnitPrice         string          `json:"unit_price"`
	Status            string          `json:"status"`
	SystemNote        *string         `json:"system_note"`
	Product           *productSummary `json:"product"`
}

// productSummary is the product info embedded in order item responses.
type productSummary struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    *string `json:"category"`
	PackUnit    *string `json:"pack_unit"`
	Description *string `json:"description"`
}

func toOrderResponse(r database.OrderWithCustomerRow) orderResponse {
	resp := orderResponse{
		OrderID:     r.Order.OrderID,
		CustomerID:  r.Order.CustomerID,
		OrderDate:   r.Order.OrderDate.Format("2006-01-02"),
		TotalAmount: numericString(r.Order.TotalAmount),
		Status:      r.Order.Status,
		Customer:    toCustomerResponse(r.Customer),
	}
	if r.Order.RequiredDate.Valid {
		d := r.Order.RequiredDate.Time.Format("2006-01-02")
		resp.RequiredDate = &d
	}
	return resp
}

func toOrderItemResponse(r database.OrderItemWithProductRow) orderItemResponse {
	resp := orderItemResponse{
		OrderItemID:       r.Item.OrderItemID,
		OrderID:           r.Item.OrderID,
		ProductID:         r.Item.ProductID,
		RequestedQuantity: numericString(r.Item.RequestedQuantity),
		FulfilledQuantity: numericString(r.Item.FulfilledQuantity),
		RemainingQuantity: numericString(r.Item.RemainingQuantity),
		UnitPrice:         numericString(r.Item.UnitPrice),
		Status:            r.Item.Status,
	}
	if r.Item.SystemNote.Valid {
		resp.SystemNote = &r.Item.SystemNote.String
	}
	summary := productSummary{
		ProductID:   r.Item.ProductID,
		ProductName: "Unknown Product",
	}
	if r.ProductName.Valid {
		summary.ProductName = r.ProductName.String
	}
	if r.Category.Valid {
		summary.Category = &r.Category.String
	}
	if r.PackUnit.Valid {
		summary.PackUnit = &r.PackUnit.String
	}
	if r.Description.Valid {
		summary.Description = &r.Description.String
	}
	resp.Product = &summary
	return resp
}

// --- Handlers ---

// List returns all orders with customer info and line items, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrdersWithCustomer(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)

		items, err := h.store.ListOrderItemsByOrder(r.Context(), o.Order.OrderID)
		if err != nil {
			log.Printf("ERROR: list order items for order %d: %v", o.Order.OrderID, err)
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp[i].OrderItems = make([]orderItemResponse, len(items))
		for j, item := range items {
			resp[i].OrderItems[j] = toOrderItemResponse(item)
		}
	}
	respondData(w, http.StatusOK, resp)
}

// Get returns a single order with customer info and line items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.store.GetOrderWithCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: get order: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items, err := h.store.ListOrderItemsByOrder(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: list order items: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	itemResp := make([]orderItemResponse, len(items))
	for i, item := range items {
		itemResp[i] = toOrderItemResponse(item)
	}

	respondData(w, http.StatusOK, struct {
		Order orderResponse       `json:"order"`
		Items []orderItemResponse `json:"items"`
	}{Order: toOrderResponse(order), Items: itemResp})
}

// Create places a new order through the order intake workflow.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]service.CreateOrderItemRequest, len(req.OrderItems))
	for i, item := range req.OrderItems {
		items[i] = service.CreateOrderItemRequest{
			ProductID:         item.ProductID,
			RequestedQuantity: item.RequestedQuantity,
			UnitPrice:         item.UnitPrice,
		}
	}

	id, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		CustomerID:   req.CustomerID,
		OrderDate:    req.OrderDate,
		RequiredDate: req.RequiredDate,
		TotalAmount:  req.TotalAmount,
		Status:       req.Status,
		Items:        items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound),
			errors.Is(err, service.ErrProductNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCustomerRequired),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidUnitPrice),
			errors.Is(err, service.ErrInvalidTotalAmount),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrInvalidOrderDate),
			errors.Is(err, service.ErrInvalidRequiredDate):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: create order: %v", err)
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool   `json:"success"`
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}{Success: true, ID: id, Message: "Order created successfully"})
}

// UpdateStatus changes an order's status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !enum.IsValidOrderStatus(req.Status) {
		respondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	_, err = h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		OrderID: id,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true})
}
