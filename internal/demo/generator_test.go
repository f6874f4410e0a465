package demo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// fakeAPI is an in-memory stand-in for the HTTP API.
type fakeAPI struct {
	products  []Product
	customers map[string]Customer
	orders    []Order

	nextCustomerID int64
	nextOrderID    int64
}

func newFakeAPI(products []Product) *fakeAPI {
	return &fakeAPI{
		products:       products,
		customers:      map[string]Customer{},
		nextCustomerID: 1,
		nextOrderID:    100,
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, f.products)
	})
	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		matches := []Customer{}
		if c, ok := f.customers[email]; ok {
			matches = append(matches, c)
		}
		writeData(w, matches)
	})
	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		c := Customer{CustomerID: f.nextCustomerID, Name: req.Name, Email: req.Email}
		f.nextCustomerID++
		f.customers[req.Email] = c
		writeID(w, c.CustomerID)
	})
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var order Order
		_ = json.NewDecoder(r.Body).Decode(&order)
		f.orders = append(f.orders, order)
		id := f.nextOrderID
		f.nextOrderID++
		writeID(w, id)
	})
	return mux
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeID(w http.ResponseWriter, id int64) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "id": id})
}

func testProducts() []Product {
	return []Product{
		{ProductID: 1, ProductName: "Heirloom Tomatoes", Category: "Vegetables", PackUnit: "kg"},
		{ProductID: 2, ProductName: "Free-Range Eggs", Category: "Dairy & Eggs", PackUnit: "dozen"},
		{ProductID: 3, ProductName: "Raw Honey", Category: "Pantry", PackUnit: "jar"},
		{ProductID: 4, ProductName: "Baby Spinach", Category: "Vegetables", PackUnit: "bag"},
	}
}

func TestCreateRandomOrder(t *testing.T) {
	api := newFakeAPI(testProducts())
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	gen := NewGenerator(NewClient(srv.URL))
	id, err := gen.CreateRandomOrder(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 100 {
		t.Errorf("order id: got %d, want 100", id)
	}
	if len(api.orders) != 1 {
		t.Fatalf("orders placed: got %d, want 1", len(api.orders))
	}

	order := api.orders[0]
	if order.CustomerID == 0 {
		t.Error("order has no customer")
	}
	if order.Status != "pending" {
		t.Errorf("status: got %q, want pending", order.Status)
	}
	if n := len(order.OrderItems); n < 1 || n > 3 {
		t.Errorf("item count: got %d, want 1-3", n)
	}

	// Total must equal the sum of quantity x price across items.
	sum := decimal.Zero
	seen := map[int64]bool{}
	for _, item := range order.OrderItems {
		if seen[item.ProductID] {
			t.Errorf("product %d picked twice", item.ProductID)
		}
		seen[item.ProductID] = true

		qty := item.RequestedQuantity
		if qty.LessThan(decimal.NewFromInt(5)) || qty.GreaterThan(decimal.NewFromInt(54)) {
			t.Errorf("quantity out of range: %v", qty)
		}
		price := item.UnitPrice
		if price.LessThan(decimal.NewFromInt(5)) || price.GreaterThan(decimal.NewFromInt(25)) {
			t.Errorf("unit price out of range: %v", price)
		}
		sum = sum.Add(qty.Mul(price))
	}
	if !order.TotalAmount.Equal(sum.Round(2)) {
		t.Errorf("total: got %v, want %v", order.TotalAmount, sum.Round(2))
	}
}

func TestCreateRandomOrder_ReusesCustomer(t *testing.T) {
	api := newFakeAPI(testProducts())
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	gen := NewGenerator(NewClient(srv.URL))
	for i := 0; i < 10; i++ {
		if _, err := gen.CreateRandomOrder(context.Background()); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	// The name pool has six entries; repeated runs must reuse customers
	// rather than creating a new one per order.
	if len(api.customers) > len(customerNames) {
		t.Errorf("customers created: got %d, want at most %d", len(api.customers), len(customerNames))
	}
}

func TestCreateRandomOrder_UniqueMode(t *testing.T) {
	api := newFakeAPI(testProducts())
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	gen := NewGenerator(NewClient(srv.URL))
	gen.Unique = true
	for i := 0; i < 5; i++ {
		if _, err := gen.CreateRandomOrder(context.Background()); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	if len(api.customers) != 5 {
		t.Errorf("customers created: got %d, want 5", len(api.customers))
	}
	for email := range api.customers {
		if !strings.Contains(email, "-") || !strings.HasSuffix(email, "@example.com") {
			t.Errorf("unexpected unique email: %q", email)
		}
	}
}

func TestCreateRandomOrder_NoProducts(t *testing.T) {
	api := newFakeAPI(nil)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	gen := NewGenerator(NewClient(srv.URL))
	if _, err := gen.CreateRandomOrder(context.Background()); err == nil {
		t.Fatal("expected an error when no products exist")
	}
	if len(api.orders) != 0 {
		t.Errorf("orders placed: got %d, want 0", len(api.orders))
	}
}

func TestFindCustomerByEmail_NoMatch(t *testing.T) {
	api := newFakeAPI(nil)
	srv := httptest.NewServer(api.handler())
	defer srv.Close()

	c, err := NewClient(srv.URL).FindCustomerByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil, got: %+v", c)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "customer_id is required"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrder(context.Background(), Order{})
	if err == nil || !strings.Contains(err.Error(), "customer_id is required") {
		t.Fatalf("expected envelope error, got: %v", err)
	}
}
