package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIllegalStateTransitionError(t *testing.T) {
	tests := []struct {
		name       string
		entity     string
		transition string
		state      string
		want       string
	}{
		{"pizza put in the oven before prep", "pizza", "finish prep", "Added",
			"illegal state transition: cannot finish prep pizza in Added state"},
		{"kitchen order prepped twice", "kitchen order", "start prep", "Prepping",
			"illegal state transition: cannot start prep kitchen order in Prepping state"},
		{"state read from a corrupt row", "pizza", "finish bake", "Baking\nDone",
			"illegal state transition: cannot finish bake pizza in Baking Done state"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errs.NewIllegalStateTransitionError(tt.entity, tt.transition, tt.state)

			assert.Equal(t, tt.want, err.Error())
			require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
			assert.NotErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestReplayIsInconsistentError(t *testing.T) {
	orderRef := kernel.NewKitchenOrderRef()

	t.Run("should name the stream and the offending event", func(t *testing.T) {
		cause := errs.NewIllegalStateTransitionError("kitchen order", "finish assembly", "Created")

		err := errs.NewReplayIsInconsistentError("kitchen_orders", orderRef.String(), 1, cause)

		assert.Equal(t,
			"replay is inconsistent: topic is: kitchen_orders, ref is: "+orderRef.String()+
				", event index is: 1 (cause: illegal state transition: cannot finish assembly kitchen order in Created state)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrReplayIsInconsistent)
		assert.Equal(t, 1, err.Index)
	})

	t.Run("should hide the cause from errors.Is", func(t *testing.T) {
		cause := errs.NewIllegalStateTransitionError("pizza", "finish bake", "Added")

		err := errs.NewReplayIsInconsistentError("pizzas", kernel.NewPizzaRef().String(), 0, cause)

		assert.NotErrorIs(t, err, errs.ErrIllegalStateTransition)
	})

	t.Run("should survive wrapping by a repository", func(t *testing.T) {
		err := fmt.Errorf("load %s: %w", orderRef, errs.NewReplayIsInconsistentError("kitchen_orders", orderRef.String(), 0, nil))

		var replayErr *errs.ReplayIsInconsistentError
		require.ErrorAs(t, err, &replayErr)
		assert.Equal(t, orderRef.String(), replayErr.Ref)
		assert.NotContains(t, replayErr.Error(), "cause")
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	ref := kernel.KitchenOrderRefFor(kernel.NewOnlineOrderRef())

	t.Run("should describe the conflicting append", func(t *testing.T) {
		cause := fmt.Errorf("expected 0, kitchen_orders %s is at 1", ref)

		err := errs.NewVersionIsInvalidErrorWithCause("version", cause)

		assert.Equal(t, "version is invalid: version (cause: expected 0, kitchen_orders "+ref.String()+" is at 1)", err.Error())
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("should be found behind an event log wrap", func(t *testing.T) {
		err := fmt.Errorf("append kitchen_order.created to kitchen_orders: %w", errs.NewVersionIsInvalidError("version"))

		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
		assert.Equal(t, "append kitchen_order.created to kitchen_orders: version is invalid: version", err.Error())
	})
}

func TestObjectNotFoundError(t *testing.T) {
	pizzaRef := kernel.NewPizzaRef()

	t.Run("should print the ref of the missing stream", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("pizzaRef", pizzaRef)

		assert.Equal(t, "object not found: "+pizzaRef.String(), err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should keep the lookup failure as cause", func(t *testing.T) {
		onlineRef := kernel.NewOnlineOrderRef()
		cause := errors.New("redis: nil")

		err := errs.NewObjectNotFoundErrorWithCause("onlineOrderRef", onlineRef, cause)

		assert.Equal(t,
			"object not found: param is: onlineOrderRef, ID is: "+onlineRef.String()+" (cause: redis: nil)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, cause)
	})
}

func TestValueErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{"unknown pizza size", errs.NewValueIsInvalidError("size"), errs.ErrValueIsInvalid,
			"value is invalid: size"},
		{"undecodable ordering event",
			errs.NewValueIsInvalidErrorWithCause("ordering event", errors.New("unexpected end of JSON input")),
			errs.ErrValueIsInvalid,
			"value is invalid: ordering event (cause: unexpected end of JSON input)"},
		{"kitchen order without pizzas", errs.NewValueIsRequiredError("pizzas"), errs.ErrValueIsRequired,
			"value is required: pizzas"},
		{"online order ref missing from the query",
			errs.NewValueIsRequiredErrorWithCause("online_order_ref", errors.New("empty query param")),
			errs.ErrValueIsRequired,
			"value is required: online_order_ref (cause: empty query param)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}
