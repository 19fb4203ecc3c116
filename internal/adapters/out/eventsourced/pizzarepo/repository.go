// Package pizzarepo rebuilds pizzas from the event log. Nothing but the log
// is stored: every lookup replays the stream of the requested pizza.
package pizzarepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

var _ ports.PizzaRepository = &Repository{}

type Repository struct {
	log kernel.EventLog
}

func NewRepository(log kernel.EventLog) *Repository {
	return &Repository{log: log}
}

func (r *Repository) NextIdentity() kernel.PizzaRef {
	return kernel.NewPizzaRef()
}

func (r *Repository) Add(ctx context.Context, aggregate *pizza.Pizza) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.IsAdded() {
		return nil
	}
	return aggregate.Create(ctx)
}

func (r *Repository) FindByRef(ctx context.Context, ref kernel.PizzaRef) (*pizza.Pizza, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	history, err := r.log.EventsFor(ctx, pizza.Topic, ref.String())
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("pizza", ref.String())
	}

	return pizza.RestorePizza(r.log, history)
}

func (r *Repository) FindByKitchenOrderRef(ctx context.Context, ref kernel.KitchenOrderRef) ([]*pizza.Pizza, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	history, err := r.log.EventsFor(ctx, kitchenorder.Topic, ref.String())
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errs.NewObjectNotFoundError("kitchen order", ref.String())
	}

	added, ok := history[0].(kitchenorder.AddedEvent)
	if !ok {
		return nil, errs.NewReplayIsInconsistentError(kitchenorder.Topic.String(), ref.String(), 0,
			errs.NewValueIsInvalidError(history[0].EventType()))
	}

	pizzas := make([]*pizza.Pizza, 0, len(added.Pizzas))
	for _, item := range added.Pizzas {
		p, findErr := r.FindByRef(ctx, item.Ref)
		if errors.Is(findErr, errs.ErrObjectNotFound) {
			continue
		}
		if findErr != nil {
			return nil, findErr
		}
		pizzas = append(pizzas, p)
	}

	return pizzas, nil
}
