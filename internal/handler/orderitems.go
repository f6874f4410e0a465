package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmable/api/internal/database"
)

// OrderItemStore defines the database methods needed by the order item
// listing. Satisfied by *database.Queries.
type OrderItemStore interface {
	ListOrderItems(ctx context.Context) ([]database.OrderItemWithProductRow, error)
}

// OrderItemHandler handles the flat order item listing endpoint.
type OrderItemHandler struct {
	store OrderItemStore
}

// NewOrderItemHandler creates a new OrderItemHandler.
func NewOrderItemHandler(store OrderItemStore) *OrderItemHandler {
	return &OrderItemHandler{store: store}
}

// RegisterRoutes registers the endpoint on the given Chi router.
// Expected to be mounted at /api/order-items.
func (h *OrderItemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List returns all order items across all orders, newest first.
func (h *OrderItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListOrderItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list order items: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]orderItemResponse, len(items))
	for i, item := range items {
		resp[i] = toOrderItemResponse(item)
	}
	respondData(w, http.StatusOK, resp)
}
