package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// InventoryWithProductRow is an inventory row joined with its product.
type InventoryWithProductRow struct {
	Inventory   Inventory
	ProductName string
	Category    string
	PackUnit    string
}

// ListInventory returns all inventory rows with product info, most recently
// updated first.
func (q *Queries) ListInventory(ctx context.Context) ([]InventoryWithProductRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT i.product_id, i.quantity_available, i.last_updated,
		       p.product_name, p.category, p.pack_unit
		FROM inventory i
		JOIN products p ON i.product_id = p.product_id
		ORDER BY i.last_updated DESC, i.product_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []InventoryWithProductRow
	for rows.Next() {
		var r InventoryWithProductRow
		if err := rows.Scan(&r.Inventory.ProductID, &r.Inventory.QuantityAvailable,
			&r.Inventory.LastUpdated, &r.ProductName, &r.Category, &r.PackUnit); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetInventoryForUpdate reads a product's available quantity and row-locks it
// for the rest of the transaction, serializing concurrent order placements
// against the same product. Returns pgx.ErrNoRows when no inventory row
// exists for the product.
func (q *Queries) GetInventoryForUpdate(ctx context.Context, productID int64) (pgtype.Numeric, error) {
	var qty pgtype.Numeric
	err := q.db.QueryRow(ctx, `
		SELECT quantity_available
		FROM inventory
		WHERE product_id = $1
		FOR UPDATE
	`, productID).Scan(&qty)
	return qty, err
}

type DecrementInventoryParams struct {
	ProductID int64
	Quantity  pgtype.Numeric
}

// DecrementInventory reduces a product's available quantity by the fulfilled
// amount. The caller holds the row lock from GetInventoryForUpdate, so the
// quantity cannot have changed since it was read.
func (q *Queries) DecrementInventory(ctx context.Context, arg DecrementInventoryParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE inventory
		SET quantity_available = quantity_available - $2,
		    last_updated = now()
		WHERE product_id = $1
	`, arg.ProductID, arg.Quantity)
	return err
}

type UpsertInventoryParams struct {
	ProductID int64
	Quantity  pgtype.Numeric
}

// UpsertInventory sets a product's stock level outright. Used by the seed
// tool only; the API itself never increases stock.
func (q *Queries) UpsertInventory(ctx context.Context, arg UpsertInventoryParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO inventory (product_id, quantity_available)
		VALUES ($1, $2)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity_available = EXCLUDED.quantity_available,
		              last_updated = now()
	`, arg.ProductID, arg.Quantity)
	return err
}
