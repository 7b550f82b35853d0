package product

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
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*Product, error)
	getAllProducts(ctx context.Context, skip, limit int) ([]*Product, error)
	getProduct(ctx context.Context, productID int64) (*Product, error)
	updateProduct(ctx context.Context, productID int64, updates *UpdateProductRequest) (*Product, error)
	deleteProduct(ctx context.Context, productID int64) error
}

type handler struct {
	service servicer
}

func NewHandler(productService servicer) *handler {
	return &handler{
		service: productService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/products",
		handlerutils.MakeHandler(h.createProductHandler),
	)

	router.Get(
		"/products",
		handlerutils.MakeHandler(h.getAllProductsHandler),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(h.getProductHandler),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(h.updateProductHandler),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(h.deleteProductHandler),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateProductRequest
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

	product, err := h.service.createProduct(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrSKUAlreadyExists) {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrSKUAlreadyExists.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		product,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	skip, limit := handlerutils.Pagination(r.URL.Query())

	products, err := h.service.getAllProducts(ctx, skip, limit)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		products,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.IDParam(r, "productID")
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	productID, err := handlerutils.IDParam(r, "productID")
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
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

	product, err := h.service.updateProduct(ctx, productID, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		product,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.IDParam(r, "productID")
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		if errors.Is(err, servererrors.ErrProductNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
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
