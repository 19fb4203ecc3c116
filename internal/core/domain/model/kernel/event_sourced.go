package kernel

import (
	"context"
	"errors"
)

// ErrPublisherIsRequired is returned by Process on an aggregate that was built without an event log.
var ErrPublisherIsRequired = errors.New("event publisher is required to process commands")

// EventSourced is embedded by every aggregate. It knows the aggregate's home
// topic, the log it publishes to and how many events of its stream it has applied.
type EventSourced struct {
	topic     Topic
	publisher EventPublisher
	version   int
}

func NewEventSourced(topic Topic, publisher EventPublisher) EventSourced {
	return EventSourced{
		topic:     topic,
		publisher: publisher,
	}
}

func (a *EventSourced) Topic() Topic {
	return a.topic
}

// Version is the number of events applied to the aggregate.
func (a *EventSourced) Version() int {
	return a.version
}

// Record advances the version after an event has been applied.
func (a *EventSourced) Record() {
	a.version++
}

// Process publishes event at the current version and then applies it locally.
//
// A failed append applies nothing. When only the subscribers fail the event
// is durable, so it is applied anyway and the *DispatchError is returned.
func (a *EventSourced) Process(ctx context.Context, event Event, apply func(Event) error) error {
	if a.publisher == nil {
		return ErrPublisherIsRequired
	}

	err := a.publisher.Publish(ctx, a.topic, event, ExpectVersion(a.version))

	var dispatchErr *DispatchError
	if err != nil && !errors.As(err, &dispatchErr) {
		return err
	}

	if applyErr := apply(event); applyErr != nil {
		return errors.Join(applyErr, err)
	}

	return err
}
