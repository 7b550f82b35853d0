package eventengine

import (
	"fmt"
	"log"
	"sync"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

// eventEngine fans published events out to every subscriber of the
// event's name. Registration and subscription happen during server
// prep, before any request is served; only Publish is called
// concurrently.
type eventEngine struct {
	*EventEngineConfig

	eventEngineCh chan *event.Event
	events        map[event.EventName]*subscribers
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil || cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		log.Fatalln("event engine config, its DoneCh and InternalSrvWG must all be non-nil")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	log.Println("event engine is listening...")

	for {
		select {
		case <-e.DoneCh:
			// drain what was published before shutdown, then release
			// the subscribers
			close(e.eventEngineCh)
			for ev := range e.eventEngineCh {
				e.broadcast(ev)
			}

			e.closeSubscriberChannels()
			log.Println("event engine has shut down")
			return

		case ev, isOpened := <-e.eventEngineCh:
			if !isOpened {
				return
			}

			e.broadcast(ev)
		}
	}
}

func (e *eventEngine) broadcast(ev *event.Event) {
	subs, exists := e.events[ev.Name]
	if !exists {
		log.Printf(
			"event '%v' has no registration. check the publishing service\n",
			ev.Name,
		)
		return
	}

	for i, addressCh := range subs.addressChs {
		if addressCh == nil {
			log.Printf(
				"subscriber '%v' has a nil addressCh. check its event handler\n",
				subs.names[i],
			)
			continue
		}

		addressCh <- ev.Payload
	}
}

// RegisterEvents adds the events a publisher will publish.
//
// Register an event before publishing or subscribing to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			continue
		}

		e.events[eventName] = &subscribers{}
	}

	log.Println("registered events:", eventNames)
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	subs, ok := e.events[toEventName]
	if !ok {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service registered it before subscribing",
			toEventName,
		)
	}

	subs.names = append(subs.names, newSubscriber.Name)
	subs.addressChs = append(subs.addressChs, newSubscriber.AddressCh)

	return nil
}

func (e *eventEngine) Publish(ev *event.Event) error {
	if _, exists := e.events[ev.Name]; !exists {
		return fmt.Errorf(
			"event '%v' not found. make sure the publishing service called RegisterEvents",
			ev.Name,
		)
	}

	e.eventEngineCh <- ev

	return nil
}

func (e *eventEngine) closeSubscriberChannels() {
	closed := make(map[chan<- any]bool)

	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil || closed[addressCh] {
				continue
			}

			close(addressCh)
			closed[addressCh] = true
		}
	}
}
