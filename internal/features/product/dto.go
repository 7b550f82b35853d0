package product

import (
	"github.com/shopspring/decimal"
)

// Requests

type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"min=0"`
	StockQty    int             `json:"stock_qty" validate:"min=0"`
	CategoryID  *int64          `json:"category_id" validate:"omitempty,gt=0"`
}

// UpdateProductRequest is a sparse update: only non-nil fields are
// written. The SKU is immutable after creation. Unknown JSON keys are
// ignored by the typed decode.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
	StockQty    *int             `json:"stock_qty" validate:"omitempty,min=0"`
	CategoryID  *int64           `json:"category_id" validate:"omitempty,gt=0"`
}
