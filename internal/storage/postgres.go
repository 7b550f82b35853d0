package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgreSQL error codes this service reacts to.
const (
	PgErrForeignKeyViolation = "23503" // foreign_key_violation
	PgErrUniqueViolation     = "23505" // unique_violation
	PgErrCheckViolation      = "23514" // check_violation
)

// NewPostgresDB opens and pings the catalog database. The returned
// handle is constructed once in main and passed down; nothing else in
// the codebase opens connections.
func NewPostgresDB(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	ctx, cancel := context.WithTimeout(
		context.Background(),
		(10 * time.Second),
	)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	return db, nil
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation, the storage-level backstop behind the SKU/email pre-checks.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrUniqueViolation
}

// IsForeignKeyViolation reports whether err is a postgres foreign-key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrForeignKeyViolation
}

// IsCheckViolation reports whether err is a postgres check-constraint
// violation, such as stock_qty dropping below zero.
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrCheckViolation
}

// Migrate creates the catalog tables if they do not exist, in foreign
// key dependency order.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories(
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products(
			id BIGSERIAL PRIMARY KEY,
			sku VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price NUMERIC(10,2) NOT NULL DEFAULT 0.00 CHECK (price >= 0),
			stock_qty INTEGER NOT NULL DEFAULT 0 CHECK (stock_qty >= 0),
			category_id BIGINT REFERENCES categories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS customers(
			id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			address TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders(
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			order_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			total_amount NUMERIC(12,2) NOT NULL DEFAULT 0.00,
			shipping_address TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items(
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price NUMERIC(10,2) NOT NULL,
			line_total NUMERIC(12,2) NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run catalog migration: %w", err)
		}
	}

	return nil
}
