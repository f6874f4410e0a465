package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type CreateOrderParams struct {
	CustomerID   int64
	OrderDate    time.Time
	RequiredDate pgtype.Date
	TotalAmount  pgtype.Numeric
	Status       string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, `
		INSERT INTO orders (customer_id, order_date, required_date, total_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING order_id, customer_id, order_date, required_date, total_amount, status
	`, arg.CustomerID, arg.OrderDate, arg.RequiredDate, arg.TotalAmount, arg.Status).
		Scan(&o.OrderID, &o.CustomerID, &o.OrderDate, &o.RequiredDate, &o.TotalAmount, &o.Status)
	return o, err
}

type CreateOrderItemParams struct {
	OrderID           int64
	ProductID         int64
	RequestedQuantity pgtype.Numeric
	FulfilledQuantity pgtype.Numeric
	RemainingQuantity pgtype.Numeric
	UnitPrice         pgtype.Numeric
	Status            string
	SystemNote        pgtype.Text
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	var oi OrderItem
	err := q.db.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, requested_quantity, fulfilled_quantity, remaining_quantity, unit_price, status, system_note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING order_item_id, order_id, product_id, requested_quantity, fulfilled_quantity, remaining_quantity, unit_price, status, system_note
	`, arg.OrderID, arg.ProductID, arg.RequestedQuantity, arg.FulfilledQuantity,
		arg.RemainingQuantity, arg.UnitPrice, arg.Status, arg.SystemNote).
		Scan(&oi.OrderItemID, &oi.OrderID, &oi.ProductID, &oi.RequestedQuantity,
			&oi.FulfilledQuantity, &oi.RemainingQuantity, &oi.UnitPrice, &oi.Status, &oi.SystemNote)
	return oi, err
}

type UpdateOrderStatusParams struct {
	OrderID int64
	Status  string
}

// UpdateOrderStatus sets an order's status. Returns pgx.ErrNoRows when the
// order does not exist.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2
		WHERE order_id = $1
		RETURNING order_id
	`, arg.OrderID, arg.Status).Scan(&id)
	return id, err
}

// OrderWithCustomerRow is an order row joined with its owning customer.
type OrderWithCustomerRow struct {
	Order    Order
	Customer Customer
}

const orderWithCustomerQuery = `
	SELECT o.order_id, o.customer_id, o.order_date, o.required_date, o.total_amount, o.status,
	       c.customer_id, c.name, c.email, c.phone, c.total_spent, c.transaction_count,
	       c.last_transaction_date, c.created_at
	FROM orders o
	JOIN customers c ON o.customer_id = c.customer_id`

func scanOrderWithCustomer(rows interface{ Scan(...any) error }) (OrderWithCustomerRow, error) {
	var r OrderWithCustomerRow
	err := rows.Scan(&r.Order.OrderID, &r.Order.CustomerID, &r.Order.OrderDate,
		&r.Order.RequiredDate, &r.Order.TotalAmount, &r.Order.Status,
		&r.Customer.CustomerID, &r.Customer.Name, &r.Customer.Email, &r.Customer.Phone,
		&r.Customer.TotalSpent, &r.Customer.TransactionCount,
		&r.Customer.LastTransactionDate, &r.Customer.CreatedAt)
	return r, err
}

// ListOrdersWithCustomer returns all orders with customer info, newest first.
func (q *Queries) ListOrdersWithCustomer(ctx context.Context) ([]OrderWithCustomerRow, error) {
	rows, err := q.db.Query(ctx, orderWithCustomerQuery+`
	ORDER BY o.order_date DESC, o.order_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderWithCustomerRow
	for rows.Next() {
		r, err := scanOrderWithCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetOrderWithCustomer returns one order with customer info.
func (q *Queries) GetOrderWithCustomer(ctx context.Context, orderID int64) (OrderWithCustomerRow, error) {
	row := q.db.QueryRow(ctx, orderWithCustomerQuery+`
	WHERE o.order_id = $1`, orderID)
	return scanOrderWithCustomer(row)
}

// OrderItemWithProductRow is an order item joined with its product. The join
// is a LEFT JOIN so a missing product yields null fields instead of dropping
// the item from the result.
type OrderItemWithProductRow struct {
	Item        OrderItem
	ProductName pgtype.Text
	Category    pgtype.Text
	PackUnit    pgtype.Text
	Description pgtype.Text
}

const orderItemWithProductQuery = `
	SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.requested_quantity,
	       oi.fulfilled_quantity, oi.remaining_quantity, oi.unit_price, oi.status, oi.system_note,
	       p.product_name, p.category, p.pack_unit, p.description
	FROM order_items oi
	LEFT JOIN products p ON oi.product_id = p.product_id`

func scanOrderItemWithProduct(rows interface{ Scan(...any) error }) (OrderItemWithProductRow, error) {
	var r OrderItemWithProductRow
	err := rows.Scan(&r.Item.OrderItemID, &r.Item.OrderID, &r.Item.ProductID,
		&r.Item.RequestedQuantity, &r.Item.FulfilledQuantity, &r.Item.RemainingQuantity,
		&r.Item.UnitPrice, &r.Item.Status, &r.Item.SystemNote,
		&r.ProductName, &r.Category, &r.PackUnit, &r.Description)
	return r, err
}

// ListOrderItemsByOrder returns the line items of one order with product info.
func (q *Queries) ListOrderItemsByOrder(ctx context.Context, orderID int64) ([]OrderItemWithProductRow, error) {
	rows, err := q.db.Query(ctx, orderItemWithProductQuery+`
	WHERE oi.order_id = $1
	ORDER BY oi.order_item_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderItemWithProductRow
	for rows.Next() {
		r, err := scanOrderItemWithProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ListOrderItems returns all order items with product info, newest first.
func (q *Queries) ListOrderItems(ctx context.Context) ([]OrderItemWithProductRow, error) {
	rows, err := q.db.Query(ctx, orderItemWithProductQuery+`
	ORDER BY oi.order_item_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []OrderItemWithProductRow
	for rows.Next() {
		r, err := scanOrderItemWithProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
