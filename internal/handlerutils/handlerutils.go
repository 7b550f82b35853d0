package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/middlewares"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/go-chi/chi"
)

// APIHandler is a http handler that returns an error instead of writing
// error responses itself, so error-to-status mapping lives in one place.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

// MakeHandler wraps an APIHandler into a http.HandlerFunc, logging and
// translating any returned error. A *servererrors.ServerError keeps its
// status code; anything else is a 500.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			// tagged with the request id so the error lines up with the
			// access log written by the RequestTag middleware
			log.Printf(
				"[%s] %v\n",
				middlewares.RequestIDFromContext(r.Context()),
				err,
			)

			var serverError *servererrors.ServerError
			if errors.As(err, &serverError) {
				WriteErrorJSON(
					w,
					serverError.StatusCode,
					serverError.Error(),
					serverError.Errors,
				)
				return
			}

			WriteErrorJSON(
				w,
				http.StatusInternalServerError,
				"something went wrong",
				nil,
			)
		}
	}
}

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return servererrors.ErrInvalidRequestPayload
	}

	return json.NewDecoder(r.Body).Decode(payload)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, details any) error {
	return WriteJSON(
		w,
		statusCode,
		errorResponse{
			Error:   message,
			Details: details,
		},
	)
}

// IDParam reads a positive integer id from a chi url param.
func IDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidIDParam.Error(),
			fmt.Sprintf("'%s' must be a positive integer", idStr),
		)
	}

	return id, nil
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Pagination reads skip and limit query params, falling back to
// defaults on absent or malformed values. Never fails.
func Pagination(queryParams url.Values) (skip, limit int) {
	skip = stringToInt(0, queryParams.Get("skip"))
	limit = stringToInt(defaultListLimit, queryParams.Get("limit"))

	if skip < 0 {
		skip = 0
	}

	if limit < 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	return skip, limit
}

func stringToInt(defaultValue int, field string) int {
	num, err := strconv.Atoi(field)
	if err != nil {
		return defaultValue
	}

	return num
}
