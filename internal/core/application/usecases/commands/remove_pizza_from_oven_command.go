package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrRemovePizzaFromOvenCommandIsNotConstructed = errors.New(
	"RemovePizzaFromOvenCommand must be created via NewRemovePizzaFromOvenCommand constructor",
)

// RemovePizzaFromOvenCommand finishes baking a pizza.
type RemovePizzaFromOvenCommand struct { //nolint:recvcheck //using for validation
	pizzaRef kernel.PizzaRef

	guard guard.ConstructorGuard
}

func NewRemovePizzaFromOvenCommand(pizzaRef kernel.PizzaRef) (RemovePizzaFromOvenCommand, error) {
	if err := pizzaRef.Validate(); err != nil {
		return RemovePizzaFromOvenCommand{}, err
	}

	return RemovePizzaFromOvenCommand{
		pizzaRef: pizzaRef,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RemovePizzaFromOvenCommand) Validate() error {
	return c.guard.Validate(ErrRemovePizzaFromOvenCommandIsNotConstructed)
}

func (c RemovePizzaFromOvenCommand) PizzaRef() kernel.PizzaRef {
	return c.pizzaRef
}
