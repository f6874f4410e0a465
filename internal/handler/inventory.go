package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmable/api/internal/database"
)

// InventoryStore defines the database methods needed by the inventory
// listing. Satisfied by *database.Queries.
type InventoryStore interface {
	ListInventory(ctx context.Context) ([]database.InventoryWithProductRow, error)
}

// InventoryHandler handles the inventory view endpoint.
type InventoryHandler struct {
	store InventoryStore
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(store InventoryStore) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// RegisterRoutes registers the endpoint on the given Chi router.
// Expected to be mounted at /api/inventory.
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
}

type inventoryResponse struct {
	ProductID         int64     `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Category          string    `json:"category"`
	PackUnit          string    `json:"pack_unit"`
	QuantityAvailable string    `json:"quantity_available"`
	LastUpdated       time.Time `json:"last_updated"`
}

// List returns current stock levels with product info.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListInventory(r.Context())
	if err != nil {
		log.Printf("ERROR: list inventory: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]inventoryResponse, len(rows))
	for i, row := range rows {
		resp[i] = inventoryResponse{
			ProductID:         row.Inventory.ProductID,
			ProductName:       row.ProductName,
			Category:          row.Category,
			PackUnit:          row.PackUnit,
			QuantityAvailable: numericString(row.Inventory.QuantityAvailable),
			LastUpdated:       row.Inventory.LastUpdated,
		}
	}
	respondData(w, http.StatusOK, resp)
}
