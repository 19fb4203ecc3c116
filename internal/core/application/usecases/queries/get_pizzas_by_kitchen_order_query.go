package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetPizzasByKitchenOrderQueryIsNotConstructed = errors.New(
	"GetPizzasByKitchenOrderQuery must be created via NewGetPizzasByKitchenOrderQuery constructor",
)

// GetPizzasByKitchenOrderQuery lists the pizzas of a kitchen order in line item order.
type GetPizzasByKitchenOrderQuery struct {
	kitchenOrderRef kernel.KitchenOrderRef

	guard guard.ConstructorGuard
}

func NewGetPizzasByKitchenOrderQuery(kitchenOrderRef kernel.KitchenOrderRef) (GetPizzasByKitchenOrderQuery, error) {
	if err := kitchenOrderRef.Validate(); err != nil {
		return GetPizzasByKitchenOrderQuery{}, err
	}
	return GetPizzasByKitchenOrderQuery{kitchenOrderRef: kitchenOrderRef, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPizzasByKitchenOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPizzasByKitchenOrderQueryIsNotConstructed)
}

func (q GetPizzasByKitchenOrderQuery) KitchenOrderRef() kernel.KitchenOrderRef {
	return q.kitchenOrderRef
}
