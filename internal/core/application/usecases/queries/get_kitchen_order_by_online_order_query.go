package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetKitchenOrderByOnlineOrderQueryIsNotConstructed = errors.New(
	"GetKitchenOrderByOnlineOrderQuery must be created via NewGetKitchenOrderByOnlineOrderQuery constructor",
)

// GetKitchenOrderByOnlineOrderQuery finds the kitchen order cooked for an online order.
type GetKitchenOrderByOnlineOrderQuery struct {
	onlineOrderRef kernel.OnlineOrderRef

	guard guard.ConstructorGuard
}

func NewGetKitchenOrderByOnlineOrderQuery(onlineOrderRef kernel.OnlineOrderRef) (GetKitchenOrderByOnlineOrderQuery, error) {
	if err := onlineOrderRef.Validate(); err != nil {
		return GetKitchenOrderByOnlineOrderQuery{}, err
	}
	return GetKitchenOrderByOnlineOrderQuery{onlineOrderRef: onlineOrderRef, guard: guard.NewConstructorGuard()}, nil
}

func (q GetKitchenOrderByOnlineOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenOrderByOnlineOrderQueryIsNotConstructed)
}

func (q GetKitchenOrderByOnlineOrderQuery) OnlineOrderRef() kernel.OnlineOrderRef {
	return q.onlineOrderRef
}
