package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrStartOrderPrepCommandIsNotConstructed = errors.New(
	"StartOrderPrepCommand must be created via NewStartOrderPrepCommand constructor",
)

// StartOrderPrepCommand sends a kitchen order, and with it every pizza, into prep.
type StartOrderPrepCommand struct { //nolint:recvcheck //using for validation
	kitchenOrderRef kernel.KitchenOrderRef

	guard guard.ConstructorGuard
}

func NewStartOrderPrepCommand(kitchenOrderRef kernel.KitchenOrderRef) (StartOrderPrepCommand, error) {
	if err := kitchenOrderRef.Validate(); err != nil {
		return StartOrderPrepCommand{}, err
	}

	return StartOrderPrepCommand{
		kitchenOrderRef: kitchenOrderRef,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c StartOrderPrepCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderPrepCommandIsNotConstructed)
}

func (c StartOrderPrepCommand) KitchenOrderRef() kernel.KitchenOrderRef {
	return c.kitchenOrderRef
}
