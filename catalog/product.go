package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

var errNoUpdatableFields = errors.New("no updatable fields provided")

type Product struct {
	ProductID       int64   `json:"product_id" db:"product_id"`
	ProductName     string  `json:"product_name" db:"product_name"`
	Price           int64   `json:"price" db:"price"`
	ProductImageURL *string `json:"product_image_url" db:"product_image_url"`
}

// ProductUpdate carries the subset of product fields to change; nil fields
// are left untouched. The image URL needs its own presence flag so an update
// can clear the column, which nil alone cannot express.
type ProductUpdate struct {
	ProductName        *string
	Price              *int64
	ProductImageURL    *string
	SetProductImageURL bool
}

func (s *Store) ListProducts(ctx context.Context, limit int, offset int) ([]Product, error) {
	var products []Product
	err := pgxscan.Select(ctx, s.Replica, &products,
		`SELECT product_id, product_name, price, product_image_url
		   FROM products
		  ORDER BY product_id
		  LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) CreateProduct(ctx context.Context, name string, price int64, imageURL *string) (*Product, error) {
	var product Product
	err := pgxscan.Get(ctx, s.Primary, &product,
		`INSERT INTO products (product_name, price, product_image_url)
		 VALUES ($1, $2, $3)
		 RETURNING product_id, product_name, price, product_image_url`,
		name, price, imageURL)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) UpdateProduct(ctx context.Context, productID int64, update ProductUpdate) (*Product, error) {
	sql, args, err := buildUpdateProductQuery(productID, update)
	if err != nil {
		return nil, err
	}

	var product Product
	err = pgxscan.Get(ctx, s.Primary, &product, sql, args...)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func buildUpdateProductQuery(productID int64, update ProductUpdate) (string, []any, error) {
	var (
		clauses []string
		args    []any
	)
	appendClause := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ProductName != nil {
		appendClause("product_name", *update.ProductName)
	}
	if update.Price != nil {
		appendClause("price", *update.Price)
	}
	if update.SetProductImageURL {
		// a nil value binds NULL and clears the column
		appendClause("product_image_url", update.ProductImageURL)
	}
	if len(clauses) == 0 {
		return "", nil, errNoUpdatableFields
	}

	args = append(args, productID)
	sql := fmt.Sprintf(
		`UPDATE products SET %s WHERE product_id = $%d RETURNING product_id, product_name, price, product_image_url`,
		strings.Join(clauses, ", "), len(args))
	return sql, args, nil
}
