package eventlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "kitchen/eventlog"

// InProcessEventLog implements kernel.EventLog on top of a journal.
//
// Publish appends first and dispatches second, on the caller's goroutine.
// Handlers run in registration order against a snapshot of the subscriber
// list, so a handler may publish or subscribe without deadlocking.
type InProcessEventLog struct {
	journal ports.EventJournal
	codec   *Codec
	logger  *slog.Logger
	tracer  trace.Tracer

	mu          sync.RWMutex
	subscribers map[kernel.Topic][]kernel.EventHandler
}

type Option func(*InProcessEventLog)

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(l *InProcessEventLog) {
		l.tracer = tracer
	}
}

func NewInProcessEventLog(journal ports.EventJournal, codec *Codec, logger *slog.Logger, opts ...Option) *InProcessEventLog {
	l := &InProcessEventLog{
		journal:     journal,
		codec:       codec,
		logger:      logger.With("component", "event_log"),
		tracer:      otel.Tracer(tracerName),
		subscribers: make(map[kernel.Topic][]kernel.EventHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *InProcessEventLog) Publish(ctx context.Context, topic kernel.Topic, event kernel.Event, opts ...kernel.PublishOption) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}

	ctx, span := l.tracer.Start(ctx, "eventlog.publish", trace.WithAttributes(
		attribute.String("event.topic", topic.String()),
		attribute.String("event.type", event.EventType()),
		attribute.String("event.aggregate_ref", event.AggregateRef()),
	))
	defer span.End()

	options := kernel.NewPublishOptions(opts...)

	payload, err := l.codec.Encode(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		return fmt.Errorf("encode %s: %w", event.EventType(), err)
	}

	record, err := l.journal.Append(ctx, ports.EventRecord{
		Topic:        topic,
		AggregateRef: event.AggregateRef(),
		EventType:    event.EventType(),
		Payload:      payload,
	}, options.ExpectedVersion)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		return fmt.Errorf("append %s to %s: %w", event.EventType(), topic, err)
	}

	span.SetAttributes(attribute.Int64("event.seq", record.Seq), attribute.Int("event.version", record.Version))
	l.logger.DebugContext(ctx, "event appended",
		"topic", topic,
		"event_type", record.EventType,
		"aggregate_ref", record.AggregateRef,
		"seq", record.Seq,
		"version", record.Version,
	)

	if err = l.dispatch(ctx, topic, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		l.logger.WarnContext(ctx, "event subscribers failed",
			"topic", topic,
			"event_type", event.EventType(),
			"aggregate_ref", event.AggregateRef(),
			"error", err,
		)
		return err
	}

	return nil
}

func (l *InProcessEventLog) dispatch(ctx context.Context, topic kernel.Topic, event kernel.Event) error {
	var errList []error
	for _, handler := range l.handlers(topic) {
		if err := handler(ctx, event); err != nil {
			errList = append(errList, err)
		}
	}

	if len(errList) == 0 {
		return nil
	}

	return &kernel.DispatchError{
		Topic:     topic,
		EventType: event.EventType(),
		Err:       errors.Join(errList...),
	}
}

func (l *InProcessEventLog) handlers(topic kernel.Topic) []kernel.EventHandler {
	l.mu.RLock()
	defer l.mu.RUnlock()

	handlers := make([]kernel.EventHandler, len(l.subscribers[topic]))
	copy(handlers, l.subscribers[topic])
	return handlers
}

// Subscribe registers handler for events published to topic from now on.
func (l *InProcessEventLog) Subscribe(topic kernel.Topic, handler kernel.EventHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subscribers[topic] = append(l.subscribers[topic], handler)
}

func (l *InProcessEventLog) PurgeSubscribers() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subscribers = make(map[kernel.Topic][]kernel.EventHandler)
}

func (l *InProcessEventLog) Events(ctx context.Context, topic kernel.Topic) ([]kernel.Event, error) {
	records, err := l.journal.Load(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", topic, err)
	}
	return l.decode(records)
}

func (l *InProcessEventLog) EventsFor(ctx context.Context, topic kernel.Topic, ref string) ([]kernel.Event, error) {
	records, err := l.journal.LoadStream(ctx, topic, ref)
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", topic, ref, err)
	}
	return l.decode(records)
}

func (l *InProcessEventLog) decode(records []ports.EventRecord) ([]kernel.Event, error) {
	events := make([]kernel.Event, 0, len(records))
	for _, r := range records {
		event, err := l.codec.Decode(r.EventType, r.Payload)
		if err != nil {
			return nil, fmt.Errorf("%s seq %d: %w", r.Topic, r.Seq, err)
		}
		events = append(events, event)
	}
	return events, nil
}
