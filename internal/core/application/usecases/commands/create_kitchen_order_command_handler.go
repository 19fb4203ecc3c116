package commands

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/pkg/errs"
)

type CreateKitchenOrderCommandHandler struct {
	kitchenOrders KitchenOrderCreator
	publisher     kernel.EventPublisher
}

func NewCreateKitchenOrderCommandHandler(
	kitchenOrders KitchenOrderCreator,
	publisher kernel.EventPublisher,
) CreateKitchenOrderCommandHandler {
	return CreateKitchenOrderCommandHandler{
		kitchenOrders: kitchenOrders,
		publisher:     publisher,
	}
}

// Handle returns the ref of the online order's kitchen order, creating it on
// first call. The ref is derived from the online order ref, so concurrent
// callers race for one stream and the losers get the winner's ref back.
// When the order was stored but a subscriber failed, both the ref and the
// error are returned.
func (h *CreateKitchenOrderCommandHandler) Handle(ctx context.Context, cmd CreateKitchenOrderCommand) (kernel.KitchenOrderRef, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.KitchenOrderRef{}, err
	}

	ref := kernel.KitchenOrderRefFor(cmd.OnlineOrderRef())

	_, err := h.kitchenOrders.FindByRef(ctx, ref)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.KitchenOrderRef{}, err
	}

	order, err := kitchenorder.NewKitchenOrder(ref, cmd.OnlineOrderRef(), cmd.Sizes(), h.publisher)
	if err != nil {
		return kernel.KitchenOrderRef{}, err
	}

	if err = h.kitchenOrders.Add(ctx, order); err != nil {
		var dispatchErr *kernel.DispatchError
		switch {
		case errors.As(err, &dispatchErr):
			return ref, err
		case errors.Is(err, errs.ErrVersionIsInvalid):
			return ref, nil
		default:
			return kernel.KitchenOrderRef{}, err
		}
	}

	return ref, nil
}
