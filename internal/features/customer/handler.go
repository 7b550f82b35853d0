package customer

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
	createCustomer(ctx context.Context, newCustomer *CreateCustomerRequest) (*Customer, error)
	getAllCustomers(ctx context.Context, skip, limit int) ([]*Customer, error)
	getCustomer(ctx context.Context, customerID int64) (*Customer, error)
	updateCustomer(ctx context.Context, customerID int64, updates *UpdateCustomerRequest) (*Customer, error)
	deleteCustomer(ctx context.Context, customerID int64) error
}

type handler struct {
	service servicer
}

func NewHandler(customerService servicer) *handler {
	return &handler{
		service: customerService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/customers",
		handlerutils.MakeHandler(h.createCustomerHandler),
	)

	router.Get(
		"/customers",
		handlerutils.MakeHandler(h.getAllCustomersHandler),
	)

	router.Get(
		"/customers/{customerID}",
		handlerutils.MakeHandler(h.getCustomerHandler),
	)

	router.Put(
		"/customers/{customerID}",
		handlerutils.MakeHandler(h.updateCustomerHandler),
	)

	router.Delete(
		"/customers/{customerID}",
		handlerutils.MakeHandler(h.deleteCustomerHandler),
	)
}

func (h *handler) createCustomerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCustomerRequest
	defer r.Body.Close()

	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	// malformed email is rejected here, before any storage access
	if err := validate.StructFields(payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrValidationFailed.Error(),
			err,
		)
	}

	customer, err := h.service.createCustomer(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrEmailAlreadyExists) {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrEmailAlreadyExists.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		customer,
	)
}

func (h *handler) getAllCustomersHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	skip, limit := handlerutils.Pagination(r.URL.Query())

	customers, err := h.service.getAllCustomers(ctx, skip, limit)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		customers,
	)
}

func (h *handler) getCustomerHandler(w http.ResponseWriter, r *http.Request) error {
	customerID, err := handlerutils.IDParam(r, "customerID")
	if err != nil {
		return err
	}

	customer, err := h.service.getCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, servererrors.ErrCustomerNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCustomerNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		customer,
	)
}

func (h *handler) updateCustomerHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	customerID, err := handlerutils.IDParam(r, "customerID")
	if err != nil {
		return err
	}

	var payload *UpdateCustomerRequest
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

	customer, err := h.service.updateCustomer(ctx, customerID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCustomerNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCustomerNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrEmailAlreadyExists):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrEmailAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		customer,
	)
}

func (h *handler) deleteCustomerHandler(w http.ResponseWriter, r *http.Request) error {
	customerID, err := handlerutils.IDParam(r, "customerID")
	if err != nil {
		return err
	}

	if err := h.service.deleteCustomer(r.Context(), customerID); err != nil {
		if errors.Is(err, servererrors.ErrCustomerNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCustomerNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		map[string]bool{"ok": true},
	)
}
