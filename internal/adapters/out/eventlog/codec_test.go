package eventlog_test

import (
	"testing"

	"kitchen/internal/adapters/out/eventlog"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCodec(t *testing.T) {
	codec := eventlog.NewDomainCodec()
	pizzaRef := kernel.NewPizzaRef()
	orderRef := kernel.NewKitchenOrderRef()

	events := []kernel.Event{
		pizza.AddedEvent{PizzaRef: pizzaRef, KitchenOrderRef: orderRef, Size: kernel.SizeMedium},
		pizza.PrepStartedEvent{PizzaRef: pizzaRef, KitchenOrderRef: orderRef},
		pizza.PrepFinishedEvent{PizzaRef: pizzaRef, KitchenOrderRef: orderRef},
		pizza.BakeFinishedEvent{PizzaRef: pizzaRef, KitchenOrderRef: orderRef},
		kitchenorder.AddedEvent{
			KitchenOrderRef: orderRef,
			OnlineOrderRef:  kernel.NewOnlineOrderRef(),
			Pizzas:          []kitchenorder.LineItem{{Ref: pizzaRef, Size: kernel.SizeMedium}},
		},
		kitchenorder.PrepStartedEvent{KitchenOrderRef: orderRef},
		kitchenorder.BakeStartedEvent{KitchenOrderRef: orderRef},
		kitchenorder.AssemblyStartedEvent{KitchenOrderRef: orderRef},
		kitchenorder.AssemblyFinishedEvent{KitchenOrderRef: orderRef},
		ordering.PaidEvent{OnlineOrderRef: kernel.NewOnlineOrderRef()},
	}

	for _, event := range events {
		t.Run("should round trip "+event.EventType(), func(t *testing.T) {
			payload, err := codec.Encode(event)
			require.NoError(t, err)

			decoded, err := codec.Decode(event.EventType(), payload)

			require.NoError(t, err)
			assert.Equal(t, event, decoded)
		})
	}

	t.Run("should write sizes and refs as text", func(t *testing.T) {
		payload, err := codec.Encode(pizza.AddedEvent{PizzaRef: pizzaRef, KitchenOrderRef: orderRef, Size: kernel.SizeLarge})
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"pizza_ref":"`+pizzaRef.String()+`","kitchen_order_ref":"`+orderRef.String()+`","size":"large"}`,
			string(payload))
	})

	t.Run("should reject unknown types and bad payloads", func(t *testing.T) {
		_, err := codec.Decode("pizza.eaten", []byte(`{}`))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = codec.Decode(pizza.AddedEventType, []byte(`{"size":"family"}`))
		require.Error(t, err)
	})
}
