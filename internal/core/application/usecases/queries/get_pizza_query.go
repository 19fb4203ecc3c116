package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetPizzaQueryIsNotConstructed = errors.New(
	"GetPizzaQuery must be created via NewGetPizzaQuery constructor",
)

type GetPizzaQuery struct {
	ref kernel.PizzaRef

	guard guard.ConstructorGuard
}

func NewGetPizzaQuery(ref kernel.PizzaRef) (GetPizzaQuery, error) {
	if err := ref.Validate(); err != nil {
		return GetPizzaQuery{}, err
	}
	return GetPizzaQuery{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPizzaQuery) Validate() error {
	return q.guard.Validate(ErrGetPizzaQueryIsNotConstructed)
}

func (q GetPizzaQuery) Ref() kernel.PizzaRef {
	return q.ref
}
