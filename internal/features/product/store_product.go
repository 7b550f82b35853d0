package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const productColumns = `id, sku, name, description, price, stock_qty, category_id, created_at, updated_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	query := `INSERT INTO products(sku, name, description, price, stock_qty, category_id)
		VALUES($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newProduct.SKU,
		newProduct.Name,
		newProduct.Description,
		newProduct.Price,
		newProduct.StockQty,
		newProduct.CategoryID,
	)

	product, err := scanRowIntoProduct(row)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new product in product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) findAll(ctx context.Context, skip, limit int) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all products from product store: %w",
			err,
		)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		product, err := scanRowIntoProduct(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan product from product store: %w",
				err,
			)
		}

		products = append(products, product)
	}

	return products, rows.Err()
}

func (s *Store) findByID(ctx context.Context, productID int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanRowIntoProduct(
		s.db.QueryRowContext(ctx, query, productID),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) findBySKU(ctx context.Context, sku string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	product, err := scanRowIntoProduct(
		s.db.QueryRowContext(ctx, query, sku),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan product from product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) updateOne(ctx context.Context, productID int64, updates *UpdateProductRequest) (*Product, error) {
	setClause, queryParams := generateUpdateQueryAndParams(updates)
	if len(queryParams) == 0 {
		// nothing to change; report current state
		return s.findByID(ctx, productID)
	}

	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d RETURNING `+productColumns,
		setClause,
		len(queryParams)+1,
	)
	queryParams = append(queryParams, productID)

	product, err := scanRowIntoProduct(
		s.db.QueryRowContext(ctx, query, queryParams...),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to update product in product store: %w",
			err,
		)
	}

	return product, nil
}

func (s *Store) deleteOne(ctx context.Context, productID int64) (bool, error) {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to delete product in product store: %w",
			err,
		)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRowIntoProduct(row rowScanner) (*Product, error) {
	var product Product
	err := row.Scan(
		&product.ID,
		&product.SKU,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQty,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// generateUpdateQueryAndParams builds a SET clause from the non-nil
// fields of a sparse update, matching only the known optional columns.
func generateUpdateQueryAndParams(updates *UpdateProductRequest) (string, []any) {
	setClauses := []string{}
	queryParams := []any{}

	appendSet := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if updates.Name != nil {
		appendSet("name", *updates.Name)
	}

	if updates.Description != nil {
		appendSet("description", *updates.Description)
	}

	if updates.Price != nil {
		appendSet("price", *updates.Price)
	}

	if updates.StockQty != nil {
		appendSet("stock_qty", *updates.StockQty)
	}

	if updates.CategoryID != nil {
		appendSet("category_id", *updates.CategoryID)
	}

	if len(setClauses) == 0 {
		return "", nil
	}

	setClauses = append(setClauses, "updated_at = now()")

	return strings.Join(setClauses, ", "), queryParams
}
