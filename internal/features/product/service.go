package product

import (
	"context"
	"strings"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
)

type Storer interface {
	createOne(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	findAll(ctx context.Context, skip, limit int) ([]*Product, error)
	findByID(ctx context.Context, productID int64) (*Product, error)
	findBySKU(ctx context.Context, sku string) (*Product, error)
	updateOne(ctx context.Context, productID int64, updates *UpdateProductRequest) (*Product, error)
	deleteOne(ctx context.Context, productID int64) (bool, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error) {
	newProduct.SKU = strings.TrimSpace(newProduct.SKU)
	newProduct.Name = strings.TrimSpace(newProduct.Name)

	existing, err := s.store.findBySKU(ctx, newProduct.SKU)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrSKUAlreadyExists
	}

	product, err := s.store.createOne(ctx, newProduct)
	if err != nil {
		// the unique constraint is the authority; the pre-check above
		// can lose a race
		if storage.IsUniqueViolation(err) {
			return nil, servererrors.ErrSKUAlreadyExists
		}

		return nil, err
	}

	return product, nil
}

func (s *service) getAllProducts(ctx context.Context, skip, limit int) ([]*Product, error) {
	return s.store.findAll(ctx, skip, limit)
}

func (s *service) getProduct(ctx context.Context, productID int64) (*Product, error) {
	product, err := s.store.findByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, servererrors.ErrProductNotFound
	}

	return product, nil
}

func (s *service) updateProduct(ctx context.Context, productID int64, updates *UpdateProductRequest) (*Product, error) {
	product, err := s.store.updateOne(ctx, productID, updates)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, servererrors.ErrProductNotFound
	}

	return product, nil
}

func (s *service) deleteProduct(ctx context.Context, productID int64) error {
	deleted, err := s.store.deleteOne(ctx, productID)
	if err != nil {
		return err
	}

	if !deleted {
		return servererrors.ErrProductNotFound
	}

	return nil
}
