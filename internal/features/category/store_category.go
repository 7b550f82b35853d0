package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const categoryColumns = `id, name, description, created_at`

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	query := `INSERT INTO categories(name, description)
		VALUES($1, $2)
		RETURNING ` + categoryColumns

	category, err := scanRowIntoCategory(
		s.db.QueryRowContext(
			ctx,
			query,
			newCategory.Name,
			newCategory.Description,
		),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to insert new category in category store: %w",
			err,
		)
	}

	return category, nil
}

func (s *Store) findAll(ctx context.Context, skip, limit int) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all categories from category store: %w",
			err,
		)
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category, err := scanRowIntoCategory(rows)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan category from category store: %w",
				err,
			)
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (s *Store) findByID(ctx context.Context, categoryID int64) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanRowIntoCategory(
		s.db.QueryRowContext(ctx, query, categoryID),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan category from category store: %w",
			err,
		)
	}

	return category, nil
}

func (s *Store) findByName(ctx context.Context, name string) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`

	category, err := scanRowIntoCategory(
		s.db.QueryRowContext(ctx, query, name),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan category from category store: %w",
			err,
		)
	}

	return category, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRowIntoCategory(row rowScanner) (*Category, error) {
	var category Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &category, nil
}
