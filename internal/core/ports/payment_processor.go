package ports

import (
	"context"

	"kitchen/internal/core/domain/model/payment"
)

// PaymentProcessor receives payment notifications. Requests are fire-and-forget.
type PaymentProcessor interface {
	Request(ctx context.Context, payment payment.Payment) error
}
