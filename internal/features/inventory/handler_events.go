package inventory

import (
	"context"
	"log"
	"sync"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine/event"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.inventory"

type servicer interface {
	checkStockLevel(ctx context.Context, productID int64) error
}

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Service       servicer
	AddressChSize uint16
}

type handlerEvent struct {
	*HandlerEventsConfig
	addressCh chan any
}

// NewEventHandler subscribes the restock watcher to order events and
// starts its listen goroutine.
func NewEventHandler(cfg *HandlerEventsConfig) *handlerEvent {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil || cfg.Service == nil {
		log.Fatalf(
			"either 'DoneCh', 'EventEngine', 'InternalSrvWG' or 'Service' is nil in '%s'",
			subscriberName,
		)
	}

	he := &handlerEvent{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.addSubscriptions()

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvent) listen() {
	defer h.InternalSrvWG.Done()

	log.Printf("%s is listening...\n", subscriberName)

	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.OrderCreatedEvent:
			h.orderCreatedEventHandler(ne)

		default:
			log.Printf(
				"received unknown event type: %T\n",
				ne,
			)
		}
	}

	log.Printf("shutting down %s\n", subscriberName)
}

func (h *handlerEvent) orderCreatedEventHandler(newEvent *event.OrderCreatedEvent) {
	ctx := context.Background()

	seen := make(map[int64]bool, len(newEvent.ProductIDs))
	for _, productID := range newEvent.ProductIDs {
		if seen[productID] {
			continue
		}
		seen[productID] = true

		if err := h.Service.checkStockLevel(ctx, productID); err != nil {
			log.Printf(
				"failed to check stock level for product %d after order %d: %v\n",
				productID,
				newEvent.OrderID,
				err,
			)
		}
	}
}

// addSubscriptions subscribes this handler's addressCh to every event
// it wants to receive.
func (h *handlerEvent) addSubscriptions() {
	subscribeToEventNames := [1]event.EventName{
		event.OrderCreatedEventName,
	}

	for _, eventName := range subscribeToEventNames {
		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			log.Fatalf(
				"error in subscriber '%s' subscribing to events: %v\n",
				subscriberName,
				err,
			)
		}
	}
}
