package order

import (
	"context"
	"testing"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/customer"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	args := m.Called(ctx, newOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockStore) findByID(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockStore) findAll(ctx context.Context, skip, limit int) ([]*Order, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

type mockCustomerFinder struct {
	mock.Mock
}

func (m *mockCustomerFinder) FindCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func Test_createOrder(t *testing.T) {
	newOrder := &CreateOrderRequest{
		CustomerID: 1,
		Items: []OrderItemRequest{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		},
	}

	t.Run("resolves the customer then delegates to the store", func(t *testing.T) {
		customers := new(mockCustomerFinder)
		customers.On("FindCustomer", mock.Anything, int64(1)).
			Return(&customer.Customer{ID: 1}, nil)

		store := new(mockStore)
		store.On("createOne", mock.Anything, newOrder).
			Return(&Order{
				ID:          5,
				CustomerID:  1,
				Status:      StatusPending,
				TotalAmount: decimal.RequireFromString("25.00"),
				Items: []*OrderItem{
					{ID: 1, ProductID: 10, Quantity: 2, LineTotal: decimal.RequireFromString("20.00")},
					{ID: 2, ProductID: 11, Quantity: 1, LineTotal: decimal.RequireFromString("5.00")},
				},
			}, nil)

		svc := NewService(store, customers, nil)

		order, err := svc.createOrder(context.Background(), newOrder)

		require.NoError(t, err)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")))
		assert.Len(t, order.Items, 2)
		customers.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("missing customer aborts before any write", func(t *testing.T) {
		customers := new(mockCustomerFinder)
		customers.On("FindCustomer", mock.Anything, int64(1)).
			Return(nil, servererrors.ErrCustomerNotFound)

		store := new(mockStore)

		svc := NewService(store, customers, nil)

		order, err := svc.createOrder(context.Background(), newOrder)

		assert.ErrorIs(t, err, servererrors.ErrCustomerNotFound)
		assert.Nil(t, order)
		store.AssertNotCalled(t, "createOne", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock propagates with the product id", func(t *testing.T) {
		customers := new(mockCustomerFinder)
		customers.On("FindCustomer", mock.Anything, int64(1)).
			Return(&customer.Customer{ID: 1}, nil)

		store := new(mockStore)
		store.On("createOne", mock.Anything, newOrder).
			Return(nil, &servererrors.InsufficientStockError{ProductID: 11})

		svc := NewService(store, customers, nil)

		order, err := svc.createOrder(context.Background(), newOrder)

		var insufficientStock *servererrors.InsufficientStockError
		require.ErrorAs(t, err, &insufficientStock)
		assert.Equal(t, int64(11), insufficientStock.ProductID)
		assert.Nil(t, order)
	})

	t.Run("duplicate product ids are passed through per occurrence", func(t *testing.T) {
		duplicated := &CreateOrderRequest{
			CustomerID: 1,
			Items: []OrderItemRequest{
				{ProductID: 10, Quantity: 1},
				{ProductID: 10, Quantity: 2},
			},
		}

		customers := new(mockCustomerFinder)
		customers.On("FindCustomer", mock.Anything, int64(1)).
			Return(&customer.Customer{ID: 1}, nil)

		store := new(mockStore)
		store.On("createOne", mock.Anything, mock.MatchedBy(func(req *CreateOrderRequest) bool {
			return len(req.Items) == 2 &&
				req.Items[0].ProductID == 10 && req.Items[0].Quantity == 1 &&
				req.Items[1].ProductID == 10 && req.Items[1].Quantity == 2
		})).Return(&Order{ID: 6, CustomerID: 1}, nil)

		svc := NewService(store, customers, nil)

		_, err := svc.createOrder(context.Background(), duplicated)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func Test_getOrder_notFound(t *testing.T) {
	store := new(mockStore)
	store.On("findByID", mock.Anything, int64(99)).Return(nil, nil)

	svc := NewService(store, new(mockCustomerFinder), nil)

	order, err := svc.getOrder(context.Background(), 99)

	assert.ErrorIs(t, err, servererrors.ErrOrderNotFound)
	assert.Nil(t, order)
}
