package event

type EventName string
type SubscriberName string

type Event struct {
	Name    EventName
	Payload any
}

type Subscriber struct {
	Name      SubscriberName // name of the subscriber, for logs
	AddressCh chan<- any     // where the subscriber receives payloads
}
