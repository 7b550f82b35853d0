package category

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
	createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error)
	getAllCategories(ctx context.Context, skip, limit int) ([]*Category, error)
	getCategory(ctx context.Context, categoryID int64) (*Category, error)
}

type handler struct {
	service servicer
}

func NewHandler(categoryService servicer) *handler {
	return &handler{
		service: categoryService,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/categories",
		handlerutils.MakeHandler(h.createCategoryHandler),
	)

	router.Get(
		"/categories",
		handlerutils.MakeHandler(h.getAllCategoriesHandler),
	)

	router.Get(
		"/categories/{categoryID}",
		handlerutils.MakeHandler(h.getCategoryHandler),
	)
}

func (h *handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(
		r.Context(),
		(30 * time.Second),
	)
	defer cancel()

	var payload *CreateCategoryRequest
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

	category, err := h.service.createCategory(ctx, payload)
	if err != nil {
		if errors.Is(err, servererrors.ErrCategoryNameAlreadyExists) {
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrCategoryNameAlreadyExists.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		category,
	)
}

func (h *handler) getAllCategoriesHandler(w http.ResponseWriter, r *http.Request) error {
	skip, limit := handlerutils.Pagination(r.URL.Query())

	categories, err := h.service.getAllCategories(r.Context(), skip, limit)
	if err != nil {
		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		categories,
	)
}

func (h *handler) getCategoryHandler(w http.ResponseWriter, r *http.Request) error {
	categoryID, err := handlerutils.IDParam(r, "categoryID")
	if err != nil {
		return err
	}

	category, err := h.service.getCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, servererrors.ErrCategoryNotFound) {
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCategoryNotFound.Error(),
				nil,
			)
		}

		return err
	}

	return handlerutils.WriteJSON(
		w,
		http.StatusOK,
		category,
	)
}
