package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Customer struct {
	CustomerID          int64
	Name                string
	Email               string
	Phone               pgtype.Text
	TotalSpent          pgtype.Numeric
	TransactionCount    int32
	LastTransactionDate pgtype.Date
	CreatedAt           time.Time
}

type Product struct {
	ProductID          int64
	ProductName        string
	Category           string
	ShelfLife          pgtype.Int4
	ShelfLifeUnit      pgtype.Text
	UnlimitedShelfLife bool
	PackUnit           string
	Description        pgtype.Text
	ProductImage       pgtype.Text
}

type Inventory struct {
	ProductID         int64
	QuantityAvailable pgtype.Numeric
	LastUpdated       time.Time
}

type Order struct {
	OrderID      int64
	CustomerID   int64
	OrderDate    time.Time
	RequiredDate pgtype.Date
	TotalAmount  pgtype.Numeric
	Status       string
}

type OrderItem struct {
	OrderItemID       int64
	OrderID           int64
	ProductID         int64
	RequestedQuantity pgtype.Numeric
	FulfilledQuantity pgtype.Numeric
	RemainingQuantity pgtype.Numeric
	UnitPrice         pgtype.Numeric
	Status            string
	SystemNote        pgtype.Text
}
