package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) findStockLevel(ctx context.Context, productID int64) (*StockLevel, error) {
	query := `SELECT id, name, stock_qty FROM products WHERE id = $1`

	var level StockLevel
	err := s.db.QueryRowContext(ctx, query, productID).Scan(
		&level.ProductID,
		&level.Name,
		&level.StockQty,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan stock level in inventory store: %w",
			err,
		)
	}

	return &level, nil
}
