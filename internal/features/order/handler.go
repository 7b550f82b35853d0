package order

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/handlerutils"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/validate"
	"github.com/go-chi/chi"
)

type servicer interface {
	createOrder(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error)
	getOrder(ctx context.Context, orderID int64) (*Order, error)
	getAllOrders(ctx context.Context, skip, limit int) ([]*Order, error)
}

type handler struct {
	service servicer
}

func NewHandler(orderService servicer) *handler {
	return &handler{
		service: orderService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/orders",
		handlerutils.MakeHandler(h.createOrderHandler),
	)

	router.Get(
		"/orders",
		handlerutils.MakeHandler(h.getAllOrdersHandler),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(h.getOrderHandler),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	// order creation can block on another transaction's row locks, so
	// it gets a longer budget than the plain crud handlers
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(60 * time.Second),
	)
	defer cancel()

	var payload *CreateOrderRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	order, err := h.service.createOrder(ctx, payload)
	if err != nil {
		var productNotFound *servererrors.ProductNotFoundError
		var insufficientStock *servererrors.InsufficientStockError

		switch {
		case errors.Is(err, servererrors.ErrCustomerNotFound):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrCustomerNotFound.Error(),
				nil,
			)

		case errors.As(err, &productNotFound):
			return servererrors.New(
				http.StatusBadRequest,
				productNotFound.Error(),
				nil,
			)

		case errors.As(err, &insufficientStock):
			return servererrors.New(
				http.StatusBadRequest,
				insufficientStock.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		order,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := handlerutils.IDParam(r, "orderID")
	if err != nil {
		return err
	}

	order, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, servererrors.ErrOrderNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrOrderNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		order,
	)
}

func (h *handler) getAllOrdersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	skip, limit := handlerutils.Pagination(r.URL.Query())

	orders, err := h.service.getAllOrders(ctx, skip, limit)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		orders,
	)
}
