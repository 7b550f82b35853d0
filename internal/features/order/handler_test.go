package order

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) createOrder(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	args := m.Called(ctx, newOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockService) getOrder(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *mockService) getAllOrders(ctx context.Context, skip, limit int) ([]*Order, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func newTestRouter(service servicer) *chi.Mux {
	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)
	return router
}

func Test_createOrderHandler(t *testing.T) {
	body := []byte(`{"customer_id": 1, "items": [{"product_id": 10, "quantity": 2}]}`)

	t.Run("returns the created order", func(t *testing.T) {
		service := new(mockService)
		service.On("createOrder", mock.Anything, mock.Anything).
			Return(&Order{
				ID:          5,
				CustomerID:  1,
				Status:      StatusPending,
				TotalAmount: decimal.RequireFromString("20.00"),
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTestRouter(service).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
		assert.Contains(t, rec.Body.String(), `"total_amount":"20.00"`)
	})

	t.Run("unknown customer maps to 400", func(t *testing.T) {
		service := new(mockService)
		service.On("createOrder", mock.Anything, mock.Anything).
			Return(nil, servererrors.ErrCustomerNotFound)

		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Customer not found")
	})

	t.Run("unknown product maps to 400 with the product id", func(t *testing.T) {
		service := new(mockService)
		service.On("createOrder", mock.Anything, mock.Anything).
			Return(nil, &servererrors.ProductNotFoundError{ProductID: 10})

		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Product id 10 not found")
	})

	t.Run("insufficient stock maps to 400 with the product id", func(t *testing.T) {
		service := new(mockService)
		service.On("createOrder", mock.Anything, mock.Anything).
			Return(nil, &servererrors.InsufficientStockError{ProductID: 10})

		req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		newTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not enough stock for product id 10")
	})

	t.Run("empty items fail validation before the service runs", func(t *testing.T) {
		service := new(mockService)

		req := httptest.NewRequest(
			http.MethodPost,
			"/orders",
			bytes.NewReader([]byte(`{"customer_id": 1, "items": []}`)),
		)
		rec := httptest.NewRecorder()

		newTestRouter(service).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "createOrder", mock.Anything, mock.Anything)
	})
}

func Test_getOrderHandler_notFound(t *testing.T) {
	service := new(mockService)
	service.On("getOrder", mock.Anything, int64(99)).
		Return(nil, servererrors.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodGet, "/orders/99", nil)
	rec := httptest.NewRecorder()

	newTestRouter(service).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}
