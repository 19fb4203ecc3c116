package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/pizza"
)

// PizzaRepository stores pizzas as their event streams.
type PizzaRepository interface {
	NextIdentity() kernel.PizzaRef

	// Add publishes the creation event of a pizza built by pizza.NewPizza.
	// Adding the same instance twice is a no-op.
	Add(ctx context.Context, aggregate *pizza.Pizza) error

	// FindByRef replays the pizza's stream.
	FindByRef(ctx context.Context, ref kernel.PizzaRef) (*pizza.Pizza, error)

	// FindByKitchenOrderRef returns the pizzas of an order in line item order.
	// Line items whose pizza has not been added yet are skipped.
	FindByKitchenOrderRef(ctx context.Context, ref kernel.KitchenOrderRef) ([]*pizza.Pizza, error)
}
