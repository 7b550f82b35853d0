package order

import (
	"context"
	"log"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine/event"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/features/customer"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
)

type Storer interface {
	createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error)
	findByID(ctx context.Context, orderID int64) (*Order, error)
	findAll(ctx context.Context, skip, limit int) ([]*Order, error)
}

type customerFinder interface {
	FindCustomer(ctx context.Context, customerID int64) (*customer.Customer, error)
}

type service struct {
	store           Storer
	customerService customerFinder
	eventEngine     eventengine.RegisterPublisher
}

func NewService(
	store Storer,
	customerService customerFinder,
	eventEngine eventengine.RegisterPublisher,
) *service {
	s := &service{
		store:           store,
		customerService: customerService,
		eventEngine:     eventEngine,
	}

	if s.eventEngine != nil {
		s.eventEngine.RegisterEvents(event.OrderCreatedEventName)
	}

	return s
}

func (s *service) createOrder(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	// resolve the customer before opening the transaction; nothing has
	// been written yet if this fails
	if _, err := s.customerService.FindCustomer(ctx, newOrder.CustomerID); err != nil {
		return nil, err
	}

	order, err := s.store.createOne(ctx, newOrder)
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)

	return order, nil
}

func (s *service) getOrder(ctx context.Context, orderID int64) (*Order, error) {
	order, err := s.store.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order == nil {
		return nil, servererrors.ErrOrderNotFound
	}

	return order, nil
}

func (s *service) getAllOrders(ctx context.Context, skip, limit int) ([]*Order, error) {
	return s.store.findAll(ctx, skip, limit)
}

func (s *service) publishOrderCreated(order *Order) {
	if s.eventEngine == nil {
		return
	}

	productIDs := make([]int64, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	createdEvent := &event.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		ProductIDs: productIDs,
	}

	err := s.eventEngine.Publish(
		&event.Event{
			Name:    createdEvent.GetEventName(),
			Payload: createdEvent,
		},
	)
	if err != nil {
		log.Printf(
			"failed to publish order created event for order %d: %v\n",
			order.ID,
			err,
		)
	}
}
