package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const customerColumns = `customer_id, name, email, phone, total_spent, transaction_count, last_transaction_date, created_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.CustomerID, &c.Name, &c.Email, &c.Phone,
		&c.TotalSpent, &c.TransactionCount, &c.LastTransactionDate, &c.CreatedAt)
	return c, err
}

// ListCustomers returns all customers, newest first.
func (q *Queries) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// ListCustomersByEmail returns customers matching the exact email address.
// The demo scripts use this to reuse an existing customer before creating one.
func (q *Queries) ListCustomersByEmail(ctx context.Context, email string) ([]Customer, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE email = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

type CreateCustomerParams struct {
	Name  string
	Email string
	Phone pgtype.Text
}

// CreateCustomer inserts a customer and returns its generated id.
func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING customer_id
	`, arg.Name, arg.Email, arg.Phone).Scan(&id)
	return id, err
}

type ApplyCustomerTransactionParams struct {
	CustomerID      int64
	Amount          pgtype.Numeric
	TransactionDate pgtype.Date
}

// ApplyCustomerTransaction bumps the customer's running aggregates for one
// placed order. Returns pgx.ErrNoRows when the customer does not exist.
func (q *Queries) ApplyCustomerTransaction(ctx context.Context, arg ApplyCustomerTransactionParams) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		UPDATE customers
		SET transaction_count = transaction_count + 1,
		    total_spent = total_spent + $2,
		    last_transaction_date = $3
		WHERE customer_id = $1
		RETURNING customer_id
	`, arg.CustomerID, arg.Amount, arg.TransactionDate).Scan(&id)
	return id, err
}
