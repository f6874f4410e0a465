package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `product_id, product_name, category, shelf_life, shelf_life_unit, unlimited_shelf_life, pack_unit, description, product_image`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ProductID, &p.ProductName, &p.Category, &p.ShelfLife,
		&p.ShelfLifeUnit, &p.UnlimitedShelfLife, &p.PackUnit, &p.Description, &p.ProductImage)
	return p, err
}

// ListProducts returns all products, newest first.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY product_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type CreateProductParams struct {
	ProductName        string
	Category           string
	ShelfLife          pgtype.Int4
	ShelfLifeUnit      pgtype.Text
	UnlimitedShelfLife bool
	PackUnit           string
	Description        pgtype.Text
	ProductImage       pgtype.Text
}

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO products (product_name, category, shelf_life, shelf_life_unit, unlimited_shelf_life, pack_unit, description, product_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns+`
	`, arg.ProductName, arg.Category, arg.ShelfLife, arg.ShelfLifeUnit,
		arg.UnlimitedShelfLife, arg.PackUnit, arg.Description, arg.ProductImage)
	return scanProduct(row)
}

type UpdateProductParams struct {
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

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE products
		SET product_name = $2,
		    category = $3,
		    shelf_life = $4,
		    shelf_life_unit = $5,
		    unlimited_shelf_life = $6,
		    pack_unit = $7,
		    description = $8,
		    product_image = $9
		WHERE product_id = $1
		RETURNING `+productColumns+`
	`, arg.ProductID, arg.ProductName, arg.Category, arg.ShelfLife,
		arg.ShelfLifeUnit, arg.UnlimitedShelfLife, arg.PackUnit, arg.Description, arg.ProductImage)
	return scanProduct(row)
}

// DeleteProduct removes a product. The delete fails with a foreign key
// violation when order items or inventory still reference it.
func (q *Queries) DeleteProduct(ctx context.Context, productID int64) (int64, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		DELETE FROM products
		WHERE product_id = $1
		RETURNING product_id
	`, productID).Scan(&id)
	return id, err
}
