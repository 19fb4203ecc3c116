package commands

import (
	"context"
)

// RemovePizzaFromOvenCommandHandler finishes baking a pizza. When it is the
// last one of its order, the order completes assembly before Handle returns.
type RemovePizzaFromOvenCommandHandler struct {
	pizzas PizzaFinder
}

func NewRemovePizzaFromOvenCommandHandler(pizzas PizzaFinder) RemovePizzaFromOvenCommandHandler {
	return RemovePizzaFromOvenCommandHandler{pizzas: pizzas}
}

func (h *RemovePizzaFromOvenCommandHandler) Handle(ctx context.Context, cmd RemovePizzaFromOvenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := h.pizzas.FindByRef(ctx, cmd.PizzaRef())
	if err != nil {
		return err
	}

	return p.FinishBake(ctx)
}
