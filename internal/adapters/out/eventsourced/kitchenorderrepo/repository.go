// Package kitchenorderrepo rebuilds kitchen orders from the event log.
package kitchenorderrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

var _ ports.KitchenOrderRepository = &Repository{}

type Repository struct {
	log kernel.EventLog
}

func NewRepository(log kernel.EventLog) *Repository {
	return &Repository{log: log}
}

func (r *Repository) NextIdentity() kernel.KitchenOrderRef {
	return kernel.NewKitchenOrderRef()
}

func (r *Repository) Add(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.IsAdded() {
		return nil
	}
	return aggregate.Create(ctx)
}

func (r *Repository) FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error) {
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

	return kitchenorder.RestoreKitchenOrder(r.log, history)
}

// FindByOnlineOrderRef looks under the ref derived from the online order
// first and then scans the topic for an AddedEvent naming ref, which finds
// orders created under a generated ref. The first match wins.
func (r *Repository) FindByOnlineOrderRef(ctx context.Context, ref kernel.OnlineOrderRef) (*kitchenorder.KitchenOrder, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	derived, err := r.FindByRef(ctx, kernel.KitchenOrderRefFor(ref))
	switch {
	case err == nil && derived.OnlineOrderRef().IsEqual(ref):
		return derived, nil
	case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	events, err := r.log.Events(ctx, kitchenorder.Topic)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		added, ok := event.(kitchenorder.AddedEvent)
		if ok && added.OnlineOrderRef.IsEqual(ref) {
			return r.FindByRef(ctx, added.KitchenOrderRef)
		}
	}

	return nil, errs.NewObjectNotFoundError("kitchen order for online order", ref.String())
}

// FindAll replays every kitchen order in creation order. Streams that do not
// fold are skipped and reported in the joined error, so the orders returned
// alongside a non-nil error are still usable.
func (r *Repository) FindAll(ctx context.Context) ([]*kitchenorder.KitchenOrder, error) {
	events, err := r.log.Events(ctx, kitchenorder.Topic)
	if err != nil {
		return nil, err
	}

	streams := make(map[string][]kernel.Event)
	var refs []string
	for _, event := range events {
		ref := event.AggregateRef()
		if _, seen := streams[ref]; !seen {
			refs = append(refs, ref)
		}
		streams[ref] = append(streams[ref], event)
	}

	orders := make([]*kitchenorder.KitchenOrder, 0, len(refs))
	var errList []error
	for _, ref := range refs {
		o, restoreErr := kitchenorder.RestoreKitchenOrder(r.log, streams[ref])
		if restoreErr != nil {
			errList = append(errList, restoreErr)
			continue
		}
		orders = append(orders, o)
	}

	return orders, errors.Join(errList...)
}
