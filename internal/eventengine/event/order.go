package event

const (
	OrderCreatedEventName EventName = "order.created"
)

// OrderCreatedEvent is published by the order service once an order
// transaction has committed. ProductIDs lists every product whose stock
// was decremented, one entry per order item.
type OrderCreatedEvent struct {
	OrderID    int64
	CustomerID int64
	ProductIDs []int64
}

func (e *OrderCreatedEvent) GetEventName() EventName {
	return OrderCreatedEventName
}
