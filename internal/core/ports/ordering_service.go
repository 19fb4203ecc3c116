package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ordering"
)

// OrderingService is the anti-corruption boundary to the ordering context.
type OrderingService interface {
	FindByRef(ctx context.Context, ref kernel.OnlineOrderRef) (*ordering.OnlineOrder, error)
}

// OnlineOrderCatalog is where the anti-corruption layer keeps the online
// orders it has translated, so that OrderingService can answer lookups.
type OnlineOrderCatalog interface {
	OrderingService
	Save(ctx context.Context, order *ordering.OnlineOrder) error
}
