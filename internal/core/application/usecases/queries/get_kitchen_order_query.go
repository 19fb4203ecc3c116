package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetKitchenOrderQueryIsNotConstructed = errors.New(
	"GetKitchenOrderQuery must be created via NewGetKitchenOrderQuery constructor",
)

// GetKitchenOrderQuery retrieves a kitchen order by its ref.
//
//	query, err := NewGetKitchenOrderQuery(ref)
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
type GetKitchenOrderQuery struct {
	ref kernel.KitchenOrderRef

	guard guard.ConstructorGuard
}

func NewGetKitchenOrderQuery(ref kernel.KitchenOrderRef) (GetKitchenOrderQuery, error) {
	if err := ref.Validate(); err != nil {
		return GetKitchenOrderQuery{}, err
	}
	return GetKitchenOrderQuery{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetKitchenOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetKitchenOrderQueryIsNotConstructed)
}

func (q GetKitchenOrderQuery) Ref() kernel.KitchenOrderRef {
	return q.ref
}
