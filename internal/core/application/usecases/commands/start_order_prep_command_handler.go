package commands

import (
	"context"
)

// StartOrderPrepCommandHandler starts prep on a kitchen order. The pizzas
// follow through choreography before Handle returns.
type StartOrderPrepCommandHandler struct {
	kitchenOrders KitchenOrderFinder
}

func NewStartOrderPrepCommandHandler(kitchenOrders KitchenOrderFinder) StartOrderPrepCommandHandler {
	return StartOrderPrepCommandHandler{kitchenOrders: kitchenOrders}
}

func (h *StartOrderPrepCommandHandler) Handle(ctx context.Context, cmd StartOrderPrepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	order, err := h.kitchenOrders.FindByRef(ctx, cmd.KitchenOrderRef())
	if err != nil {
		return err
	}

	return order.StartPrep(ctx)
}
