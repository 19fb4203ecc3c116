package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrFinishPizzaPrepCommandIsNotConstructed = errors.New(
	"FinishPizzaPrepCommand must be created via NewFinishPizzaPrepCommand constructor",
)

// FinishPizzaPrepCommand marks a pizza as prepped, which puts it in the oven.
type FinishPizzaPrepCommand struct { //nolint:recvcheck //using for validation
	pizzaRef kernel.PizzaRef

	guard guard.ConstructorGuard
}

func NewFinishPizzaPrepCommand(pizzaRef kernel.PizzaRef) (FinishPizzaPrepCommand, error) {
	if err := pizzaRef.Validate(); err != nil {
		return FinishPizzaPrepCommand{}, err
	}

	return FinishPizzaPrepCommand{
		pizzaRef: pizzaRef,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c FinishPizzaPrepCommand) Validate() error {
	return c.guard.Validate(ErrFinishPizzaPrepCommandIsNotConstructed)
}

func (c FinishPizzaPrepCommand) PizzaRef() kernel.PizzaRef {
	return c.pizzaRef
}
