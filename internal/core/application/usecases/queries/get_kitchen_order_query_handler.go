package queries

import (
	"context"
)

type GetKitchenOrderQueryHandler struct {
	kitchenOrders KitchenOrderReader
}

func NewGetKitchenOrderQueryHandler(kitchenOrders KitchenOrderReader) GetKitchenOrderQueryHandler {
	return GetKitchenOrderQueryHandler{kitchenOrders: kitchenOrders}
}

func (h GetKitchenOrderQueryHandler) Handle(ctx context.Context, query GetKitchenOrderQuery) (KitchenOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return KitchenOrderResponse{}, err
	}

	order, err := h.kitchenOrders.FindByRef(ctx, query.Ref())
	if err != nil {
		return KitchenOrderResponse{}, err
	}

	return kitchenOrderResponse(order), nil
}
