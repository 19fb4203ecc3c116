package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
)

// KitchenOrderRepository stores kitchen orders as their event streams.
type KitchenOrderRepository interface {
	NextIdentity() kernel.KitchenOrderRef

	// Add publishes the creation event of an order built by
	// kitchenorder.NewKitchenOrder. Adding the same instance twice is a no-op.
	Add(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error

	FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error)

	// FindByOnlineOrderRef returns the order cooked for an online order.
	FindByOnlineOrderRef(ctx context.Context, ref kernel.OnlineOrderRef) (*kitchenorder.KitchenOrder, error)

	// FindAll replays every kitchen order in creation order. Orders whose
	// history does not fold are left out and their ReplayIsInconsistentErrors
	// joined into the returned error.
	FindAll(ctx context.Context) ([]*kitchenorder.KitchenOrder, error)
}
