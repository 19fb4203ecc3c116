// Package kafka is the anti-corruption layer between the ordering context and
// the kitchen. It reads the ordering topic, stores the translated online
// orders and publishes ordering.PaidEvent on the kitchen's event log.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewReader builds a consumer-group reader for the ordering topic.
func NewReader(brokers []string, groupID, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
}

// ErrPoisonMessage marks a message that can never be handled: it does not
// decode or does not translate into an online order.
var ErrPoisonMessage = errors.New("poison message")

const (
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 30 * time.Second
)

type OrderingConsumer struct {
	reader     MessageReader
	catalog    ports.OnlineOrderCatalog
	publisher  kernel.EventPublisher
	payments   ports.PaymentProcessor
	retryDelay time.Duration
	logger     *slog.Logger
}

type ConsumerOption func(*OrderingConsumer)

// WithRetryDelay sets the first pause before a failed message is handled
// again. The pause doubles on every attempt up to 30s.
func WithRetryDelay(d time.Duration) ConsumerOption {
	return func(c *OrderingConsumer) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

func NewOrderingConsumer(
	reader MessageReader,
	catalog ports.OnlineOrderCatalog,
	publisher kernel.EventPublisher,
	payments ports.PaymentProcessor,
	logger *slog.Logger,
	opts ...ConsumerOption,
) *OrderingConsumer {
	c := &OrderingConsumer{
		reader:     reader,
		catalog:    catalog,
		publisher:  publisher,
		payments:   payments,
		retryDelay: defaultRetryDelay,
		logger:     logger.With("component", "ordering_consumer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is done. A message is committed only after it was
// handled or found to be poison. Any other failure is retried on the same
// message, so no later offset is committed past it.
func (c *OrderingConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err = c.handleWithRetry(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset %d: %w", msg.Offset, err)
		}
	}
}

func (c *OrderingConsumer) handleWithRetry(ctx context.Context, msg kafka.Message) error {
	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := c.Handle(ctx, msg.Value)
		if err == nil {
			return nil
		}

		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
			"error", err,
		}
		if errors.Is(err, ErrPoisonMessage) {
			c.logger.ErrorContext(ctx, "skipping poison ordering event", attrs...)
			return nil
		}
		c.logger.WarnContext(ctx, "failed to handle ordering event, retrying", append(attrs, "delay", delay)...)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, maxRetryDelay)
	}
}

// Handle translates one message value. Messages that do not decode or
// translate fail with ErrPoisonMessage. Event types other than order.paid
// are ignored.
func (c *OrderingConsumer) Handle(ctx context.Context, value []byte) error {
	event, err := DecodeOrderingEvent(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPoisonMessage, err)
	}
	if event.EventType != EventOrderPaid {
		c.logger.DebugContext(ctx, "ignoring ordering event", "event_type", event.EventType, "order_id", event.OrderID)
		return nil
	}

	order, err := event.OnlineOrder()
	if err != nil {
		return fmt.Errorf("%w: translate order %q: %w", ErrPoisonMessage, event.OrderID, err)
	}

	if err = c.catalog.Save(ctx, order); err != nil {
		return err
	}

	if p, payErr := event.Payment(order.Ref()); payErr != nil {
		c.logger.WarnContext(ctx, "invalid payment reference", "order_id", event.OrderID, "error", payErr)
	} else if payErr = c.payments.Request(ctx, p); payErr != nil {
		c.logger.WarnContext(ctx, "payment request failed", "order_id", event.OrderID, "error", payErr)
	}

	return c.publisher.Publish(ctx, ordering.Topic, ordering.PaidEvent{OnlineOrderRef: order.Ref()})
}

func (c *OrderingConsumer) Close() error {
	return c.reader.Close()
}
