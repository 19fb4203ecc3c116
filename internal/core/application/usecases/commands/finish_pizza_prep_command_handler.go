package commands

import (
	"context"
)

type FinishPizzaPrepCommandHandler struct {
	pizzas PizzaFinder
}

func NewFinishPizzaPrepCommandHandler(pizzas PizzaFinder) FinishPizzaPrepCommandHandler {
	return FinishPizzaPrepCommandHandler{pizzas: pizzas}
}

func (h *FinishPizzaPrepCommandHandler) Handle(ctx context.Context, cmd FinishPizzaPrepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := h.pizzas.FindByRef(ctx, cmd.PizzaRef())
	if err != nil {
		return err
	}

	return p.FinishPrep(ctx)
}
