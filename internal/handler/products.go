package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/farmable/api/internal/database"
)

// ProductStore defines the database methods needed by product handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]database.Product, error)
	CreateProduct(ctx context.Context, arg database.CreateProductParams) (database.Product, error)
	UpdateProduct(ctx context.Context, arg database.UpdateProductParams) (database.Product, error)
	DeleteProduct(ctx context.Context, productID int64) (int64, error)
}

// ProductHandler handles product CRUD endpoints.
type ProductHandler struct {
	store ProductStore
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store ProductStore) *ProductHandler {
	return &ProductHandler{store: store}
}

// RegisterRoutes registers product CRUD endpoints on the given Chi router.
// Expected to be mounted at /api/products.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// --- Request / Response types ---

type productRequest struct {
	ProductName        string `json:"product_name"`
	Category           string `json:"category"`
	ShelfLife          *int32 `json:"shelf_life"`
	ShelfLifeUnit      string `json:"shelf_life_unit"`
	UnlimitedShelfLife bool   `json:"unlimited_shelf_life"`
	PackUnit           string `json:"pack_unit"`
	Description        string `json:"description"`
	ProductImage       string `json:"product_image"`
}

type productResponse struct {
	ProductID          int64   `json:"product_id"`
	ProductName        string  `json:"product_name"`
	Category           string  `json:"category"`
	ShelfLife          *int32  `json:"shelf_life"`
	ShelfLifeUnit      *string `json:"shelf_life_unit"`
	UnlimitedShelfLife bool    `json:"unlimited_shelf_life"`
	PackUnit           string  `json:"pack_unit"`
	Description        *string `json:"description"`
	ProductImage       *string `json:"product_image"`
}

func toProductResponse(p database.Product) productResponse {
	resp := productResponse{
		ProductID:          p.ProductID,
		ProductName:        p.ProductName,
		Category:           p.Category,
		UnlimitedShelfLife: p.UnlimitedShelfLife,
		PackUnit:           p.PackUnit,
	}
	if p.ShelfLife.Valid {
		sl := p.ShelfLife.Int32
		resp.ShelfLife = &sl
	}
	if p.ShelfLifeUnit.Valid {
		resp.ShelfLifeUnit = &p.ShelfLifeUnit.String
	}
	if p.Description.Valid {
		resp.Description = &p.Description.String
	}
	if p.ProductImage.Valid {
		resp.ProductImage = &p.ProductImage.String
	}
	return resp
}

// --- Helpers ---

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (req *productRequest) validate() string {
	if req.ProductName == "" {
		return "product_name is required"
	}
	if req.Category == "" {
		return "category is required"
	}
	if req.PackUnit == "" {
		return "pack_unit is required"
	}
	if req.ShelfLife != nil && *req.ShelfLife < 0 {
		return "shelf_life must be >= 0"
	}
	return ""
}

func (req *productRequest) toCreateParams() database.CreateProductParams {
	p := database.CreateProductParams{
		ProductName:        req.ProductName,
		Category:           req.Category,
		UnlimitedShelfLife: req.UnlimitedShelfLife,
		PackUnit:           req.PackUnit,
	}
	if req.ShelfLife != nil && !req.UnlimitedShelfLife {
		p.ShelfLife = pgtype.Int4{Int32: *req.ShelfLife, Valid: true}
	}
	if req.ShelfLifeUnit != "" && !req.UnlimitedShelfLife {
		p.ShelfLifeUnit = pgtype.Text{String: req.ShelfLifeUnit, Valid: true}
	}
	if req.Description != "" {
		p.Description = pgtype.Text{String: req.Description, Valid: true}
	}
	if req.ProductImage != "" {
		p.ProductImage = pgtype.Text{String: req.ProductImage, Valid: true}
	}
	return p
}

// --- Handlers ---

// List returns all products, newest first.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: list products: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	respondData(w, http.StatusOK, resp)
}

// Create adds a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := h.store.CreateProduct(r.Context(), req.toCreateParams())
	if err != nil {
		log.Printf("ERROR: create product: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondData(w, http.StatusCreated, toProductResponse(product))
}

// Update replaces an existing product.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	create := req.toCreateParams()
	product, err := h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ProductID:          id,
		ProductName:        create.ProductName,
		Category:           create.Category,
		ShelfLife:          create.ShelfLife,
		ShelfLifeUnit:      create.ShelfLifeUnit,
		UnlimitedShelfLife: create.UnlimitedShelfLife,
		PackUnit:           create.PackUnit,
		Description:        create.Description,
		ProductImage:       create.ProductImage,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("ERROR: update product: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondData(w, http.StatusOK, toProductResponse(product))
}

// Delete removes a product. Products referenced by existing order items
// cannot be deleted.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if _, err := h.store.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondError(w, http.StatusNotFound, "product not found")
			return
		}
		if isForeignKeyViolation(err) {
			respondError(w, http.StatusBadRequest, "product is referenced by existing orders")
			return
		}
		log.Printf("ERROR: delete product: %v", err)
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true})
}
