package customer

import (
	"context"
	"strings"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
)

type Storer interface {
	createOne(ctx context.Context, newCustomer *CreateCustomerRequest) (*Customer, error)
	findAll(ctx context.Context, skip, limit int) ([]*Customer, error)
	findByID(ctx context.Context, customerID int64) (*Customer, error)
	findByEmail(ctx context.Context, email string) (*Customer, error)
	updateOne(ctx context.Context, customerID int64, updates *UpdateCustomerRequest) (*Customer, error)
	deleteOne(ctx context.Context, customerID int64) (bool, error)
}

type service struct {
	store Storer
}

func NewService(store Storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCustomer(ctx context.Context, newCustomer *CreateCustomerRequest) (*Customer, error) {
	newCustomer.Email = strings.TrimSpace(newCustomer.Email)

	existing, err := s.store.findByEmail(ctx, newCustomer.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrEmailAlreadyExists
	}

	customer, err := s.store.createOne(ctx, newCustomer)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, servererrors.ErrEmailAlreadyExists
		}

		return nil, err
	}

	return customer, nil
}

func (s *service) getAllCustomers(ctx context.Context, skip, limit int) ([]*Customer, error) {
	return s.store.findAll(ctx, skip, limit)
}

func (s *service) getCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	customer, err := s.store.findByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if customer == nil {
		return nil, servererrors.ErrCustomerNotFound
	}

	return customer, nil
}

// FindCustomer is the lookup other features depend on; order creation
// resolves its customer through it.
func (s *service) FindCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	return s.getCustomer(ctx, customerID)
}

func (s *service) updateCustomer(ctx context.Context, customerID int64, updates *UpdateCustomerRequest) (*Customer, error) {
	if updates.Email != nil {
		trimmed := strings.TrimSpace(*updates.Email)
		updates.Email = &trimmed
	}

	customer, err := s.store.updateOne(ctx, customerID, updates)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, servererrors.ErrEmailAlreadyExists
		}

		return nil, err
	}

	if customer == nil {
		return nil, servererrors.ErrCustomerNotFound
	}

	return customer, nil
}

func (s *service) deleteCustomer(ctx context.Context, customerID int64) error {
	deleted, err := s.store.deleteOne(ctx, customerID)
	if err != nil {
		return err
	}

	if !deleted {
		return servererrors.ErrCustomerNotFound
	}

	return nil
}
