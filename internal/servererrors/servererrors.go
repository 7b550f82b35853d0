package servererrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidIDParam        = errors.New("invalid id parameter")

	ErrSKUAlreadyExists          = errors.New("SKU already exists")
	ErrEmailAlreadyExists        = errors.New("Email already exists")
	ErrCategoryNameAlreadyExists = errors.New("Category name already exists")

	ErrProductNotFound  = errors.New("Product not found")
	ErrCustomerNotFound = errors.New("Customer not found")
	ErrOrderNotFound    = errors.New("Order not found")
	ErrCategoryNotFound = errors.New("Category not found")
)

// ServerError carries the HTTP status code a handler error should be
// written with, plus optional field-level details for the response body.
type ServerError struct {
	StatusCode int
	Message    string
	Errors     any
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.Message
}

// ProductNotFoundError is raised by order creation when a requested
// product id has no row. It names the offending id so the handler can
// report it.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product id %d not found", e.ProductID)
}

// InsufficientStockError is raised by order creation when a locked
// product row has less stock than the requested quantity.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for product id %d", e.ProductID)
}
