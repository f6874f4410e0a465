package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/farmable/api/internal/database"
)

// CustomerStore defines the database methods needed by customer handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]database.Customer, error)
	ListCustomersByEmail(ctx context.Context, email string) ([]database.Customer, error)
	CreateCustomer(ctx context.Context, arg database.CreateCustomerParams) (int64, error)
}

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	store CustomerStore
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterRoutes registers customer endpoints on the given Chi router.
// Expected to be mounted at /api/customers.
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}

// --- Request / Response types ---

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type customerResponse struct {
	CustomerID          int64     `json:"customer_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               *string   `json:"phone"`
	TotalSpent          string    `json:"total_spent"`
	TransactionCount    int32     `json:"transaction_count"`
	LastTransactionDate *string   `json:"last_transaction_date"`
	CreatedAt           time.Time `json:"created_at"`
}

func toCustomerResponse(c database.Customer) customerResponse {
	resp := customerResponse{
		CustomerID:       c.CustomerID,
		Name:             c.Name,
		Email:            c.Email,
		TotalSpent:       numericString(c.TotalSpent),
		TransactionCount: c.TransactionCount,
		CreatedAt:        c.CreatedAt,
	}
	if c.Phone.Valid {
		resp.Phone = &c.Phone.String
	}
	if c.LastTransactionDate.Valid {
		d := c.LastTransactionDate.Time.Format("2006-01-02")
		resp.LastTransactionDate = &d
	}
	return resp
}

// --- Handlers ---

// List returns all customers, newest first. An ?email= query filters to the
// exact address; the demo scripts use that to find a customer to reuse.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		customers []database.Customer
		err       error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		customers, err = h.store.ListCustomersByEmail(r.Context(), email)
	} else {
		customers, err = h.store.ListCustomers(r.Context())
	}
	if err != nil {
		log.Printf("ERROR: list customers: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}
	respondData(w, http.StatusOK, resp)
}

// Create adds a new customer and returns its id.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	phone := pgtype.Text{}
	if req.Phone != "" {
		phone = pgtype.Text{String: req.Phone, Valid: true}
	}

	id, err := h.store.CreateCustomer(r.Context(), database.CreateCustomerParams{
		Name:  req.Name,
		Email: req.Email,
		Phone: phone,
	})
	if err != nil {
		log.Printf("ERROR: create customer: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Success bool  `json:"success"`
		ID      int64 `json:"id"`
	}{Success: true, ID: id})
}
