package kernel

import (
	"context"
	"fmt"
)

// Topic names a channel on the event log. Each aggregate type has a home topic.
type Topic string

func (t Topic) String() string {
	return string(t)
}

// Event is an immutable fact. AggregateRef addresses the stream the event
// belongs to within its topic.
type Event interface {
	EventType() string
	AggregateRef() string
}

// EventHandler reacts to an event delivered by the log. Handlers run on the
// publishing goroutine and may publish further events.
type EventHandler func(ctx context.Context, event Event) error

// AnyVersion disables the optimistic concurrency check on publish.
const AnyVersion = -1

type PublishOptions struct {
	// ExpectedVersion is the number of events the target stream must already
	// hold for the append to succeed, or AnyVersion.
	ExpectedVersion int
}

type PublishOption func(*PublishOptions)

func ExpectVersion(version int) PublishOption {
	return func(o *PublishOptions) {
		o.ExpectedVersion = version
	}
}

func NewPublishOptions(opts ...PublishOption) PublishOptions {
	options := PublishOptions{ExpectedVersion: AnyVersion}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type (
	EventPublisher interface {
		// Publish appends event to topic and then synchronously delivers it to
		// every handler subscribed to topic, in registration order.
		Publish(ctx context.Context, topic Topic, event Event, opts ...PublishOption) error
	}

	EventSubscriber interface {
		Subscribe(topic Topic, handler EventHandler)
	}

	EventReader interface {
		// Events returns every event of topic in append order.
		Events(ctx context.Context, topic Topic) ([]Event, error)

		// EventsFor returns the stream of a single aggregate in append order.
		EventsFor(ctx context.Context, topic Topic, ref string) ([]Event, error)
	}

	// EventLog is the single source of truth and the only channel between aggregates.
	EventLog interface {
		EventPublisher
		EventSubscriber
		EventReader

		// PurgeSubscribers removes every handler. History is untouched.
		PurgeSubscribers()
	}
)

// DispatchError is returned by Publish when the event was appended but at
// least one subscriber failed. The event stays in the log.
type DispatchError struct {
	Topic     Topic
	EventType string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s on %s: %v", e.EventType, e.Topic, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
