package category

import (
	"context"
	"strings"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
)

type Storer interface {
	createOne(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	findAll(ctx context.Context, skip, limit int) ([]*Category, error)
	findByID(ctx context.Context, categoryID int64) (*Category, error)
	findByName(ctx context.Context, name string) (*Category, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	newCategory.Name = strings.TrimSpace(newCategory.Name)

	existing, err := s.store.findByName(ctx, newCategory.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrCategoryNameAlreadyExists
	}

	category, err := s.store.createOne(ctx, newCategory)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, servererrors.ErrCategoryNameAlreadyExists
		}

		return nil, err
	}

	return category, nil
}

func (s *service) getAllCategories(ctx context.Context, skip, limit int) ([]*Category, error) {
	return s.store.findAll(ctx, skip, limit)
}

func (s *service) getCategory(ctx context.Context, categoryID int64) (*Category, error) {
	category, err := s.store.findByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if category == nil {
		return nil, servererrors.ErrCategoryNotFound
	}

	return category, nil
}
