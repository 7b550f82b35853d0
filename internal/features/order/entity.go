package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customer_id"`
	OrderDate       time.Time       `json:"order_date"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress *string         `json:"shipping_address,omitempty"`
	Items           []*OrderItem    `json:"items"`
}

// OrderItem snapshots the product price at order time; UnitPrice and
// LineTotal never change after the order commits.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
