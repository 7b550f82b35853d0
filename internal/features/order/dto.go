package order

// Requests

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID      int64              `json:"customer_id" validate:"required,gt=0"`
	ShippingAddress *string            `json:"shipping_address"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}
