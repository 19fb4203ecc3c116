package queries

import (
	"context"
)

type GetPizzaQueryHandler struct {
	pizzas PizzaReader
}

func NewGetPizzaQueryHandler(pizzas PizzaReader) GetPizzaQueryHandler {
	return GetPizzaQueryHandler{pizzas: pizzas}
}

func (h GetPizzaQueryHandler) Handle(ctx context.Context, query GetPizzaQuery) (PizzaResponse, error) {
	if err := query.Validate(); err != nil {
		return PizzaResponse{}, err
	}

	p, err := h.pizzas.FindByRef(ctx, query.Ref())
	if err != nil {
		return PizzaResponse{}, err
	}

	return pizzaResponse(p), nil
}
