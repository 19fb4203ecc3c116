// Package commands contains the kitchen operations that change state.
// Every command is a validated value object with a handler; handlers load
// aggregates from their repositories and invoke a single aggregate command.
// The events that follow are published by the aggregate itself, so there is
// no transaction to commit here.
package commands

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/pizza"
)

// Narrow views of the repositories in ports, one per handler need.
type (
	KitchenOrderCreator interface {
		Add(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error
		FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error)
	}

	KitchenOrderFinder interface {
		FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error)
	}

	PizzaFinder interface {
		FindByRef(ctx context.Context, ref kernel.PizzaRef) (*pizza.Pizza, error)
	}
)
