// Package payment describes a payment notification handed to the payment
// processor port. The kitchen never waits for its outcome.
package payment

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment")

// Payment links a payment ref issued by the ordering context to the online
// order it paid for.
type Payment struct {
	ref            kernel.PaymentRef
	onlineOrderRef kernel.OnlineOrderRef

	guard guard.ConstructorGuard
}

func NewPayment(ref kernel.PaymentRef, onlineOrderRef kernel.OnlineOrderRef) (Payment, error) {
	if err := errors.Join(ref.Validate(), onlineOrderRef.Validate()); err != nil {
		return Payment{}, err
	}

	return Payment{
		ref:            ref,
		onlineOrderRef: onlineOrderRef,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p Payment) Ref() kernel.PaymentRef {
	return p.ref
}

func (p Payment) OnlineOrderRef() kernel.OnlineOrderRef {
	return p.onlineOrderRef
}
