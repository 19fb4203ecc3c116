package pizza_test

import (
	"context"
	"errors"
	"testing"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamPublisher keeps published events in memory and enforces expected versions.
type streamPublisher struct {
	events []kernel.Event
}

func (s *streamPublisher) Publish(_ context.Context, _ kernel.Topic, event kernel.Event, opts ...kernel.PublishOption) error {
	options := kernel.NewPublishOptions(opts...)
	current := 0
	for _, e := range s.events {
		if e.AggregateRef() == event.AggregateRef() {
			current++
		}
	}
	if options.ExpectedVersion != kernel.AnyVersion && options.ExpectedVersion != current {
		return errs.NewVersionIsInvalidError("version")
	}
	s.events = append(s.events, event)
	return nil
}

func newAddedPizza(t *testing.T, pub *streamPublisher) *pizza.Pizza {
	t.Helper()
	p, err := pizza.NewPizza(kernel.NewPizzaRef(), kernel.NewKitchenOrderRef(), kernel.SizeMedium, pub)
	require.NoError(t, err)
	require.NoError(t, p.Create(t.Context()))
	return p
}

func TestNewPizza(t *testing.T) {
	t.Run("should create a pizza that is not yet added", func(t *testing.T) {
		ref := kernel.NewPizzaRef()
		orderRef := kernel.NewKitchenOrderRef()

		p, err := pizza.NewPizza(ref, orderRef, kernel.SizeLarge, &streamPublisher{})

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, ref, p.Ref())
		assert.Equal(t, orderRef, p.KitchenOrderRef())
		assert.Equal(t, kernel.SizeLarge, p.Size())
		assert.Equal(t, pizza.Unknown, p.State())
		assert.False(t, p.IsAdded())
		assert.Equal(t, 0, p.Version())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := pizza.NewPizza(kernel.PizzaRef{}, kernel.KitchenOrderRef{}, kernel.UnknownSize, &streamPublisher{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrRefIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero value pizza", func(t *testing.T) {
		var p pizza.Pizza
		require.ErrorIs(t, p.Validate(), pizza.ErrPizzaIsNotConstructed)
		require.ErrorIs(t, p.StartPrep(t.Context()), pizza.ErrPizzaIsNotConstructed)
	})
}

func TestPizza_Lifecycle(t *testing.T) {
	t.Run("should move strictly forward and emit one event per step", func(t *testing.T) {
		ctx := t.Context()
		pub := &streamPublisher{}
		p := newAddedPizza(t, pub)

		assert.Equal(t, pizza.Created, p.State())

		require.NoError(t, p.StartPrep(ctx))
		assert.True(t, p.IsPrepping())

		require.NoError(t, p.FinishPrep(ctx))
		assert.True(t, p.IsBaking())

		require.NoError(t, p.FinishBake(ctx))
		assert.True(t, p.HasFinishedBaking())

		require.Len(t, pub.events, 4)
		assert.Equal(t, pizza.AddedEventType, pub.events[0].EventType())
		assert.Equal(t, pizza.PrepStartedEventType, pub.events[1].EventType())
		assert.Equal(t, pizza.PrepFinishedEventType, pub.events[2].EventType())
		assert.Equal(t, pizza.BakeFinishedEventType, pub.events[3].EventType())
		assert.Equal(t, 4, p.Version())
	})

	t.Run("should fail illegal commands without appending", func(t *testing.T) {
		ctx := t.Context()
		pub := &streamPublisher{}
		p := newAddedPizza(t, pub)

		require.ErrorIs(t, p.FinishPrep(ctx), errs.ErrIllegalStateTransition)
		require.ErrorIs(t, p.FinishBake(ctx), errs.ErrIllegalStateTransition)
		require.ErrorIs(t, p.Create(ctx), errs.ErrIllegalStateTransition)

		require.NoError(t, p.StartPrep(ctx))
		require.ErrorIs(t, p.StartPrep(ctx), errs.ErrIllegalStateTransition)

		assert.Equal(t, pizza.Prepping, p.State())
		assert.Len(t, pub.events, 2)
	})

	t.Run("should refuse commands before the pizza is added", func(t *testing.T) {
		pub := &streamPublisher{}
		p, err := pizza.NewPizza(kernel.NewPizzaRef(), kernel.NewKitchenOrderRef(), kernel.SizeSmall, pub)
		require.NoError(t, err)

		err = p.StartPrep(t.Context())

		var transitionErr *errs.IllegalStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "Unknown", transitionErr.State)
		assert.Empty(t, pub.events)
	})

	t.Run("should keep state when append fails", func(t *testing.T) {
		pub := &streamPublisher{}
		p := newAddedPizza(t, pub)

		// another writer appends to the same stream first
		pub.events = append(pub.events, pizza.PrepStartedEvent{PizzaRef: p.Ref(), KitchenOrderRef: p.KitchenOrderRef()})

		err := p.StartPrep(t.Context())

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		assert.Equal(t, pizza.Created, p.State())
		assert.Equal(t, 1, p.Version())
	})
}

func TestRestorePizza(t *testing.T) {
	t.Run("should equal the in-memory aggregate after replay", func(t *testing.T) {
		ctx := t.Context()
		pub := &streamPublisher{}
		p := newAddedPizza(t, pub)
		require.NoError(t, p.StartPrep(ctx))
		require.NoError(t, p.FinishPrep(ctx))

		restored, err := pizza.RestorePizza(pub, pub.events)

		require.NoError(t, err)
		assert.Equal(t, p.Ref(), restored.Ref())
		assert.Equal(t, p.KitchenOrderRef(), restored.KitchenOrderRef())
		assert.Equal(t, p.Size(), restored.Size())
		assert.Equal(t, p.State(), restored.State())
		assert.Equal(t, p.Version(), restored.Version())

		require.NoError(t, restored.FinishBake(ctx))
		assert.True(t, restored.HasFinishedBaking())
	})

	t.Run("should report an inconsistent history", func(t *testing.T) {
		ref := kernel.NewPizzaRef()
		orderRef := kernel.NewKitchenOrderRef()
		history := []kernel.Event{
			pizza.AddedEvent{PizzaRef: ref, KitchenOrderRef: orderRef, Size: kernel.SizeSmall},
			pizza.BakeFinishedEvent{PizzaRef: ref, KitchenOrderRef: orderRef},
		}

		_, err := pizza.RestorePizza(&streamPublisher{}, history)

		var replayErr *errs.ReplayIsInconsistentError
		require.ErrorAs(t, err, &replayErr)
		assert.Equal(t, 1, replayErr.Index)
		assert.Equal(t, ref.String(), replayErr.Ref)
		assert.Equal(t, "pizzas", replayErr.Topic)
		assert.ErrorIs(t, replayErr.Cause, errs.ErrIllegalStateTransition)
	})

	t.Run("should reject events of another pizza", func(t *testing.T) {
		orderRef := kernel.NewKitchenOrderRef()
		history := []kernel.Event{
			pizza.AddedEvent{PizzaRef: kernel.NewPizzaRef(), KitchenOrderRef: orderRef, Size: kernel.SizeSmall},
			pizza.PrepStartedEvent{PizzaRef: kernel.NewPizzaRef(), KitchenOrderRef: orderRef},
		}

		_, err := pizza.RestorePizza(&streamPublisher{}, history)

		require.ErrorIs(t, err, errs.ErrReplayIsInconsistent)
	})

	t.Run("should reject an empty history", func(t *testing.T) {
		_, err := pizza.RestorePizza(&streamPublisher{}, nil)
		require.True(t, errors.Is(err, pizza.ErrHistoryIsEmpty))
	})
}
