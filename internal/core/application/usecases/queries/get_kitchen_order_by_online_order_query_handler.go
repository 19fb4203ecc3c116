package queries

import (
	"context"
)

type GetKitchenOrderByOnlineOrderQueryHandler struct {
	kitchenOrders KitchenOrderReader
}

func NewGetKitchenOrderByOnlineOrderQueryHandler(kitchenOrders KitchenOrderReader) GetKitchenOrderByOnlineOrderQueryHandler {
	return GetKitchenOrderByOnlineOrderQueryHandler{kitchenOrders: kitchenOrders}
}

func (h GetKitchenOrderByOnlineOrderQueryHandler) Handle(
	ctx context.Context,
	query GetKitchenOrderByOnlineOrderQuery,
) (KitchenOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return KitchenOrderResponse{}, err
	}

	order, err := h.kitchenOrders.FindByOnlineOrderRef(ctx, query.OnlineOrderRef())
	if err != nil {
		return KitchenOrderResponse{}, err
	}

	return kitchenOrderResponse(order), nil
}
