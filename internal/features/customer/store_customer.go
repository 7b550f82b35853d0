package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const customerColumns = `id, first_name, last_name, email, phone, address, created_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newCustomer *CreateCustomerRequest) (*Customer, error) {
	query := `INSERT INTO customers(first_name, last_name, email, phone, address)
		VALUES($1, $2, $3, $4, $5)
		RETURNING ` + customerColumns

	row := s.db.QueryRowContext(
		ctx,
		query,
		newCustomer.FirstName,
		newCustomer.LastName,
		newCustomer.Email,
		newCustomer.Phone,
		newCustomer.Address,
	)

	customer, err := scanRowIntoCustomer(row)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new customer in customer store: %w",
			err,
		)
	}

	return customer, nil
}

func (s *Store) findAll(ctx context.Context, skip, limit int) ([]*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all customers from customer store: %w",
			err,
		)
	}
	defer rows.Close()

	customers := []*Customer{}
	for rows.Next() {
		customer, err := scanRowIntoCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan customer from customer store: %w",
				err,
			)
		}

		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func (s *Store) findByID(ctx context.Context, customerID int64) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanRowIntoCustomer(
		s.db.QueryRowContext(ctx, query, customerID),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan customer from customer store: %w",
			err,
		)
	}

	return customer, nil
}

func (s *Store) findByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	customer, err := scanRowIntoCustomer(
		s.db.QueryRowContext(ctx, query, email),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan customer from customer store: %w",
			err,
		)
	}

	return customer, nil
}

func (s *Store) updateOne(ctx context.Context, customerID int64, updates *UpdateCustomerRequest) (*Customer, error) {
	setClause, queryParams := generateUpdateQueryAndParams(updates)
	if len(queryParams) == 0 {
		return s.findByID(ctx, customerID)
	}

	query := fmt.Sprintf(
		`UPDATE customers SET %s WHERE id = $%d RETURNING `+customerColumns,
		setClause,
		len(queryParams)+1,
	)
	queryParams = append(queryParams, customerID)

	customer, err := scanRowIntoCustomer(
		s.db.QueryRowContext(ctx, query, queryParams...),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to update customer in customer store: %w",
			err,
		)
	}

	return customer, nil
}

func (s *Store) deleteOne(ctx context.Context, customerID int64) (bool, error) {
	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM customers WHERE id = $1`,
		customerID,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to delete customer in customer store: %w",
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

func scanRowIntoCustomer(row rowScanner) (*Customer, error) {
	var customer Customer
	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func generateUpdateQueryAndParams(updates *UpdateCustomerRequest) (string, []any) {
	setClauses := []string{}
	queryParams := []any{}

	appendSet := func(column string, value any) {
		setClauses = append(
			setClauses,
			fmt.Sprintf("%s = $%d", column, len(queryParams)+1),
		)
		queryParams = append(queryParams, value)
	}

	if updates.FirstName != nil {
		appendSet("first_name", *updates.FirstName)
	}

	if updates.LastName != nil {
		appendSet("last_name", *updates.LastName)
	}

	if updates.Email != nil {
		appendSet("email", *updates.Email)
	}

	if updates.Phone != nil {
		appendSet("phone", *updates.Phone)
	}

	if updates.Address != nil {
		appendSet("address", *updates.Address)
	}

	if len(setClauses) == 0 {
		return "", nil
	}

	return strings.Join(setClauses, ", "), queryParams
}
