package queries

import (
	"context"
)

type GetPizzasByKitchenOrderQueryHandler struct {
	pizzas PizzaReader
}

func NewGetPizzasByKitchenOrderQueryHandler(pizzas PizzaReader) GetPizzasByKitchenOrderQueryHandler {
	return GetPizzasByKitchenOrderQueryHandler{pizzas: pizzas}
}

func (h GetPizzasByKitchenOrderQueryHandler) Handle(
	ctx context.Context,
	query GetPizzasByKitchenOrderQuery,
) ([]PizzaResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pizzas, err := h.pizzas.FindByKitchenOrderRef(ctx, query.KitchenOrderRef())
	if err != nil {
		return nil, err
	}

	responses := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		responses = append(responses, pizzaResponse(p))
	}
	return responses, nil
}
