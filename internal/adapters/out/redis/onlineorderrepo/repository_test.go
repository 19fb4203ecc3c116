package onlineorderrepo_test

import (
	"testing"
	"time"

	"kitchen/internal/adapters/out/redis/onlineorderrepo"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T, opts ...onlineorderrepo.Option) (*onlineorderrepo.Repository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return onlineorderrepo.NewRepository(client, opts...), server
}

func newOnlineOrder(t *testing.T) *ordering.OnlineOrder {
	t.Helper()
	o, err := ordering.NewOnlineOrder(kernel.NewOnlineOrderRef(), ordering.Pickup, []kernel.PizzaSize{kernel.SizeSmall, kernel.SizeLarge})
	require.NoError(t, err)
	return o
}

func TestRepository_SaveAndFind(t *testing.T) {
	t.Run("should round trip an online order", func(t *testing.T) {
		ctx := t.Context()
		repo, _ := newRepository(t)
		order := newOnlineOrder(t)

		require.NoError(t, repo.Save(ctx, order))
		found, err := repo.FindByRef(ctx, order.Ref())

		require.NoError(t, err)
		assert.Equal(t, order.Ref(), found.Ref())
		assert.Equal(t, ordering.Pickup, found.Type())
		assert.Equal(t, []kernel.PizzaSize{kernel.SizeSmall, kernel.SizeLarge}, found.Pizzas())
	})

	t.Run("should store sizes by name", func(t *testing.T) {
		ctx := t.Context()
		repo, server := newRepository(t)
		order := newOnlineOrder(t)
		require.NoError(t, repo.Save(ctx, order))

		raw, err := server.Get("kitchen:online_order:" + order.Ref().String())

		require.NoError(t, err)
		assert.JSONEq(t, `{"ref":"`+order.Ref().String()+`","type":"Pickup","pizzas":["small","large"]}`, raw)
	})

	t.Run("should return not found for an unknown ref", func(t *testing.T) {
		repo, _ := newRepository(t)

		_, err := repo.FindByRef(t.Context(), kernel.NewOnlineOrderRef())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should expire orders after the ttl", func(t *testing.T) {
		ctx := t.Context()
		repo, server := newRepository(t, onlineorderrepo.WithTTL(time.Minute))
		order := newOnlineOrder(t)
		require.NoError(t, repo.Save(ctx, order))

		server.FastForward(2 * time.Minute)
		_, err := repo.FindByRef(ctx, order.Ref())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed order", func(t *testing.T) {
		repo, _ := newRepository(t)

		err := repo.Save(t.Context(), &ordering.OnlineOrder{})

		require.ErrorIs(t, err, ordering.ErrOnlineOrderIsNotConstructed)
	})
}
