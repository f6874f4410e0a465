package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/farmable/api/internal/database"
	"github.com/farmable/api/internal/enum"
)

const dateLayout = "2006-01-02"

// Errors returned by the order service.
var (
	ErrCustomerRequired    = errors.New("customer_id is required")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidQuantity     = errors.New("requested_quantity must be > 0")
	ErrInvalidUnitPrice    = errors.New("unit_price must be >= 0")
	ErrInvalidTotalAmount  = errors.New("total_amount must be >= 0")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrInvalidOrderDate    = errors.New("invalid order_date")
	ErrInvalidRequiredDate = errors.New("invalid required_date")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to place orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	GetInventoryForUpdate(ctx context.Context, productID int64) (pgtype.Numeric, error)
	CreateOrderItem(ctx context.Context, arg database.CreateOrderItemParams) (database.OrderItem, error)
	DecrementInventory(ctx context.Context, arg database.DecrementInventoryParams) error
	ApplyCustomerTransaction(ctx context.Context, arg database.ApplyCustomerTransactionParams) (int64, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
// This allows the service to create store instances from transactions.
type NewOrderStore func(db database.DBTX) OrderStore

// CreateOrderRequest is the input for placing an order. Dates are
// YYYY-MM-DD strings; order_date defaults to today and status to "pending".
// The total amount is taken as given and never recomputed from the items.
type CreateOrderRequest struct {
	CustomerID   int64
	OrderDate    string
	RequiredDate string
	TotalAmount  decimal.Decimal
	Status       string
	Items        []CreateOrderItemRequest
}

// CreateOrderItemRequest is a single line item in the order.
type CreateOrderItemRequest struct {
	ProductID         int64
	RequestedQuantity decimal.Decimal
	UnitPrice         decimal.Decimal
}

// OrderService handles the order intake workflow.
type OrderService struct {
	pool     TxBeginner
	newStore NewOrderStore
}

// NewOrderService creates a new OrderService.
func NewOrderService(pool TxBeginner, newStore NewOrderStore) *OrderService {
	return &OrderService{pool: pool, newStore: newStore}
}

// CreateOrder validates the request and places the order: it inserts the
// order row, splits each line item into fulfilled and remaining quantities
// against current inventory, decrements stock by what was fulfilled, and
// bumps the customer's running aggregates. The whole sequence runs in one
// transaction, so a failure at any step leaves nothing behind.
//
// An empty item list is accepted: the order is created with no line items
// and the customer aggregates still update.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	if req.CustomerID <= 0 {
		return 0, ErrCustomerRequired
	}

	status := req.Status
	if status == "" {
		status = enum.OrderStatusPending
	}
	if !enum.IsValidOrderStatus(status) {
		return 0, ErrInvalidStatus
	}

	if req.TotalAmount.IsNegative() {
		return 0, ErrInvalidTotalAmount
	}

	// Default from local date components; truncating to UTC midnight would
	// shift the calendar date in zones away from UTC.
	y, m, d := time.Now().Date()
	orderDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if req.OrderDate != "" {
		t, err := time.Parse(dateLayout, req.OrderDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidOrderDate, err)
		}
		orderDate = t
	}

	requiredDate := pgtype.Date{}
	if req.RequiredDate != "" {
		t, err := time.Parse(dateLayout, req.RequiredDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidRequiredDate, err)
		}
		requiredDate = pgtype.Date{Time: t, Valid: true}
	}

	for i, item := range req.Items {
		if !item.RequestedQuantity.IsPositive() {
			return 0, fmt.Errorf("item[%d]: %w", i, ErrInvalidQuantity)
		}
		if item.UnitPrice.IsNegative() {
			return 0, fmt.Errorf("item[%d]: %w", i, ErrInvalidUnitPrice)
		}
	}

	return s.createOrderTx(ctx, req, status, orderDate, requiredDate)
}

// createOrderTx executes the full order placement in a single transaction.
func (s *OrderService) createOrderTx(ctx context.Context, req CreateOrderRequest, status string, orderDate time.Time, requiredDate pgtype.Date) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	store := s.newStore(tx)

	order, err := store.CreateOrder(ctx, database.CreateOrderParams{
		CustomerID:   req.CustomerID,
		OrderDate:    orderDate,
		RequiredDate: requiredDate,
		TotalAmount:  decimalToNumeric(req.TotalAmount),
		Status:       status,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrCustomerNotFound
		}
		return 0, fmt.Errorf("create order: %w", err)
	}

	for i, item := range req.Items {
		if err := s.placeItem(ctx, store, order.OrderID, i, item); err != nil {
			return 0, err
		}
	}

	_, err = store.ApplyCustomerTransaction(ctx, database.ApplyCustomerTransactionParams{
		CustomerID:      req.CustomerID,
		Amount:          decimalToNumeric(req.TotalAmount),
		TransactionDate: pgtype.Date{Time: orderDate, Valid: true},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCustomerNotFound
		}
		return 0, fmt.Errorf("update customer stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return order.OrderID, nil
}

// placeItem computes the fulfillment split for one line item and persists it.
// The inventory read takes a row lock, so the available quantity holds until
// the decrement at the end of this call.
func (s *OrderService) placeItem(ctx context.Context, store OrderStore, orderID int64, idx int, item CreateOrderItemRequest) error {
	available := decimal.Zero
	haveRow := true
	qty, err := store.GetInventoryForUpdate(ctx, item.ProductID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item[%d]: read inventory: %w", idx, err)
		}
		haveRow = false
	} else {
		available = numericToDecimal(qty)
	}

	fulfilled := item.RequestedQuantity
	remaining := decimal.Zero
	status := enum.OrderItemStatusCompleted
	note := pgtype.Text{}

	switch {
	case !haveRow:
		fulfilled = decimal.Zero
		remaining = item.RequestedQuantity
		status = enum.OrderItemStatusPending
		note = pgtype.Text{String: "No inventory record found for this product", Valid: true}
	case available.LessThan(item.RequestedQuantity):
		fulfilled = available
		remaining = item.RequestedQuantity.Sub(available)
		status = enum.OrderItemStatusPending
		note = pgtype.Text{
			String: fmt.Sprintf("Insufficient inventory. Requested: %s, Available: %s, Shortage: %s",
				item.RequestedQuantity, fulfilled, remaining),
			Valid: true,
		}
	}

	_, err = store.CreateOrderItem(ctx, database.CreateOrderItemParams{
		OrderID:           orderID,
		ProductID:         item.ProductID,
		RequestedQuantity: decimalToNumeric(item.RequestedQuantity),
		FulfilledQuantity: decimalToNumeric(fulfilled),
		RemainingQuantity: decimalToNumeric(remaining),
		UnitPrice:         decimalToNumeric(item.UnitPrice),
		Status:            status,
		SystemNote:        note,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("item[%d]: %w", idx, ErrProductNotFound)
		}
		return fmt.Errorf("item[%d]: create order item: %w", idx, err)
	}

	if fulfilled.IsPositive() {
		err = store.DecrementInventory(ctx, database.DecrementInventoryParams{
			ProductID: item.ProductID,
			Quantity:  decimalToNumeric(fulfilled),
		})
		if err != nil {
			return fmt.Errorf("item[%d]: decrement inventory: %w", idx, err)
		}
	}
	return nil
}

// --- Helpers ---

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
