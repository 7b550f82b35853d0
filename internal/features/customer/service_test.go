package customer

import (
	"context"
	"testing"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) createOne(ctx context.Context, newCustomer *CreateCustomerRequest) (*Customer, error) {
	args := m.Called(ctx, newCustomer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *mockStore) findAll(ctx context.Context, skip, limit int) ([]*Customer, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Customer), args.Error(1)
}

func (m *mockStore) findByID(ctx context.Context, customerID int64) (*Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *mockStore) findByEmail(ctx context.Context, email string) (*Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *mockStore) updateOne(ctx context.Context, customerID int64, updates *UpdateCustomerRequest) (*Customer, error) {
	args := m.Called(ctx, customerID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *mockStore) deleteOne(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func Test_createCustomer(t *testing.T) {
	newCustomer := &CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
	}

	t.Run("creates when email is free", func(t *testing.T) {
		store := new(mockStore)
		store.On("findByEmail", mock.Anything, "jane.doe@example.com").Return(nil, nil)
		store.On("createOne", mock.Anything, newCustomer).
			Return(&Customer{ID: 1, Email: "jane.doe@example.com"}, nil)

		svc := NewService(store)

		customer, err := svc.createCustomer(context.Background(), newCustomer)

		require.NoError(t, err)
		assert.Equal(t, int64(1), customer.ID)
		store.AssertExpectations(t)
	})

	t.Run("rejects duplicate email before writing", func(t *testing.T) {
		store := new(mockStore)
		store.On("findByEmail", mock.Anything, "jane.doe@example.com").
			Return(&Customer{ID: 4, Email: "jane.doe@example.com"}, nil)

		svc := NewService(store)

		customer, err := svc.createCustomer(context.Background(), newCustomer)

		assert.ErrorIs(t, err, servererrors.ErrEmailAlreadyExists)
		assert.Nil(t, customer)
		store.AssertNotCalled(t, "createOne", mock.Anything, mock.Anything)
	})
}

func Test_updateCustomer(t *testing.T) {
	t.Run("passes the sparse update through", func(t *testing.T) {
		firstName := "Janet"
		updates := &UpdateCustomerRequest{FirstName: &firstName}

		store := new(mockStore)
		store.On("updateOne", mock.Anything, int64(1), updates).
			Return(&Customer{ID: 1, FirstName: "Janet"}, nil)

		svc := NewService(store)

		customer, err := svc.updateCustomer(context.Background(), 1, updates)

		require.NoError(t, err)
		assert.Equal(t, "Janet", customer.FirstName)
	})

	t.Run("not found", func(t *testing.T) {
		store := new(mockStore)
		store.On("updateOne", mock.Anything, int64(99), mock.Anything).Return(nil, nil)

		svc := NewService(store)

		customer, err := svc.updateCustomer(context.Background(), 99, &UpdateCustomerRequest{})

		assert.ErrorIs(t, err, servererrors.ErrCustomerNotFound)
		assert.Nil(t, customer)
	})
}

func Test_FindCustomer_notFound(t *testing.T) {
	store := new(mockStore)
	store.On("findByID", mock.Anything, int64(42)).Return(nil, nil)

	svc := NewService(store)

	customer, err := svc.FindCustomer(context.Background(), 42)

	assert.ErrorIs(t, err, servererrors.ErrCustomerNotFound)
	assert.Nil(t, customer)
}
