package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmable/api/internal/database"
)

type mockInventoryStore struct {
	listInventoryFn func(ctx context.Context) ([]database.InventoryWithProductRow, error)
}

func (m *mockInventoryStore) ListInventory(ctx context.Context) ([]database.InventoryWithProductRow, error) {
	return m.listInventoryFn(ctx)
}

func inventoryRouter(store InventoryStore) chi.Router {
	r := chi.NewRouter()
	NewInventoryHandler(store).RegisterRoutes(r)
	return r
}

func TestInventoryList(t *testing.T) {
	updated := time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC)
	store := &mockInventoryStore{
		listInventoryFn: func(ctx context.Context) ([]database.InventoryWithProductRow, error) {
			return []database.InventoryWithProductRow{
				{
					Inventory: database.Inventory{
						ProductID:         3,
						QuantityAvailable: testNumeric("120.50"),
						LastUpdated:       updated,
					},
					ProductName: "Heirloom Tomatoes",
					Category:    "Vegetables",
					PackUnit:    "kg",
				},
			}, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	inventoryRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var rows []inventoryResponse
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(rows))
	}
	row := rows[0]
	if row.ProductID != 3 || row.ProductName != "Heirloom Tomatoes" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.QuantityAvailable != "120.50" {
		t.Errorf("quantity_available: got %q, want %q", row.QuantityAvailable, "120.50")
	}
	if !row.LastUpdated.Equal(updated) {
		t.Errorf("last_updated: got %v, want %v", row.LastUpdated, updated)
	}
}

func TestInventoryList_StoreError(t *testing.T) {
	store := &mockInventoryStore{
		listInventoryFn: func(ctx context.Context) ([]database.InventoryWithProductRow, error) {
			return nil, errors.New("connection refused")
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	inventoryRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Success || env.Error != "connection refused" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}
