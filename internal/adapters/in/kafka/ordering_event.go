package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/domain/model/payment"
	"kitchen/internal/pkg/errs"
)

// Event types published by the ordering context. Only EventOrderPaid is acted on.
const (
	EventOrderPlaced = "order.placed"
	EventOrderPaid   = "order.paid"
)

// OrderingEvent is the Kafka message envelope of the ordering context.
type OrderingEvent struct {
	EventType  string          `json:"event_type"`
	OrderID    string          `json:"order_id"`
	PaymentID  string          `json:"payment_id,omitempty"`
	Type       string          `json:"type"`
	Pizzas     []OrderingPizza `json:"pizzas"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type OrderingPizza struct {
	Size string `json:"size"`
}

// DecodeOrderingEvent parses a message value.
func DecodeOrderingEvent(value []byte) (OrderingEvent, error) {
	var event OrderingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return OrderingEvent{}, errs.NewValueIsInvalidErrorWithCause("ordering event", err)
	}
	if event.EventType == "" {
		return OrderingEvent{}, errs.NewValueIsRequiredError("event_type")
	}
	return event, nil
}

// OnlineOrder translates the envelope into the kitchen's vocabulary.
func (e OrderingEvent) OnlineOrder() (*ordering.OnlineOrder, error) {
	ref, err := kernel.OnlineOrderRefFromString(e.OrderID)
	if err != nil {
		return nil, err
	}

	orderType, err := ordering.ParseType(e.Type)
	if err != nil {
		return nil, err
	}

	sizes := make([]kernel.PizzaSize, 0, len(e.Pizzas))
	var errList []error
	for i, p := range e.Pizzas {
		size, parseErr := kernel.ParsePizzaSize(p.Size)
		if parseErr != nil {
			errList = append(errList, fmt.Errorf("pizza %d: %w", i, parseErr))
			continue
		}
		sizes = append(sizes, size)
	}
	if err = errors.Join(errList...); err != nil {
		return nil, err
	}

	return ordering.NewOnlineOrder(ref, orderType, sizes)
}

// Payment returns the payment notification of a paid order. Envelopes without
// a payment id get a fresh ref.
func (e OrderingEvent) Payment(onlineOrderRef kernel.OnlineOrderRef) (payment.Payment, error) {
	ref := kernel.NewPaymentRef()
	if e.PaymentID != "" {
		var err error
		if ref, err = kernel.PaymentRefFromString(e.PaymentID); err != nil {
			return payment.Payment{}, err
		}
	}
	return payment.NewPayment(ref, onlineOrderRef)
}
