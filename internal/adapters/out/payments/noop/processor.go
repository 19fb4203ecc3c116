package noop

import (
	"context"

	"kitchen/internal/core/domain/model/payment"
	"kitchen/internal/core/ports"
)

var _ ports.PaymentProcessor = Processor{}

// Processor is a no-op PaymentProcessor used when no payment backend is configured.
type Processor struct{}

func (Processor) Request(_ context.Context, _ payment.Payment) error { return nil }
