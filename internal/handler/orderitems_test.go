package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/farmable/api/internal/database"
)

type mockOrderItemStore struct {
	listOrderItemsFn func(ctx context.Context) ([]database.OrderItemWithProductRow, error)
}

func (m *mockOrderItemStore) ListOrderItems(ctx context.Context) ([]database.OrderItemWithProductRow, error) {
	return m.listOrderItemsFn(ctx)
}

func orderItemRouter(store OrderItemStore) chi.Router {
	r := chi.NewRouter()
	NewOrderItemHandler(store).RegisterRoutes(r)
	return r
}

func TestOrderItemList(t *testing.T) {
	store := &mockOrderItemStore{
		listOrderItemsFn: func(ctx context.Context) ([]database.OrderItemWithProductRow, error) {
			return []database.OrderItemWithProductRow{sampleItemRow(2), sampleItemRow(1)}, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	orderItemRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	var items []orderItemResponse
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) != 2 || items[0].OrderID != 2 {
		t.Errorf("unexpected items: %+v", items)
	}
	if items[0].RequestedQuantity != "10.00" || items[0].Status != "pending" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestOrderItemList_StoreError(t *testing.T) {
	store := &mockOrderItemStore{
		listOrderItemsFn: func(ctx context.Context) ([]database.OrderItemWithProductRow, error) {
			return nil, errors.New("connection refused")
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	orderItemRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Success || env.Error != "connection refused" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}
