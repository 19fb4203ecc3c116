package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrCreateKitchenOrderCommandIsNotConstructed = errors.New(
		"CreateKitchenOrderCommand must be created via NewCreateKitchenOrderCommand constructor",
	)
	ErrSizesAreRequired = errs.NewValueIsRequiredError("sizes")
)

// CreateKitchenOrderCommand opens a kitchen order for an online order, one
// pizza per size.
//
//	cmd, err := NewCreateKitchenOrderCommand(onlineOrderRef, []kernel.PizzaSize{kernel.SizeMedium})
//	if err != nil {
//	    return err
//	}
//	ref, err := handler.Handle(ctx, cmd)
type CreateKitchenOrderCommand struct { //nolint:recvcheck //using for validation
	onlineOrderRef kernel.OnlineOrderRef
	sizes          []kernel.PizzaSize

	guard guard.ConstructorGuard
}

func NewCreateKitchenOrderCommand(onlineOrderRef kernel.OnlineOrderRef, sizes []kernel.PizzaSize) (CreateKitchenOrderCommand, error) {
	cmd := CreateKitchenOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOnlineOrderRef(onlineOrderRef),
		cmd.setSizes(sizes),
	); err != nil {
		return CreateKitchenOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateKitchenOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateKitchenOrderCommandIsNotConstructed)
}

func (c CreateKitchenOrderCommand) OnlineOrderRef() kernel.OnlineOrderRef {
	return c.onlineOrderRef
}

// Sizes returns a copy of the requested pizza sizes.
func (c CreateKitchenOrderCommand) Sizes() []kernel.PizzaSize {
	sizes := make([]kernel.PizzaSize, len(c.sizes))
	copy(sizes, c.sizes)
	return sizes
}

func (c *CreateKitchenOrderCommand) setOnlineOrderRef(ref kernel.OnlineOrderRef) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	c.onlineOrderRef = ref
	return nil
}

func (c *CreateKitchenOrderCommand) setSizes(sizes []kernel.PizzaSize) error {
	if len(sizes) == 0 {
		return ErrSizesAreRequired
	}

	for _, size := range sizes {
		if err := size.Validate(); err != nil {
			return err
		}
	}

	c.sizes = make([]kernel.PizzaSize, len(sizes))
	copy(c.sizes, sizes)
	return nil
}
