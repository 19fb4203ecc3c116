package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"kitchen/internal/adapters/out/eventlog"
	"kitchen/internal/adapters/out/eventsourced/kitchenorderrepo"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// slowJournal widens the gap between reading a stream and appending to it.
type slowJournal struct {
	ports.EventJournal
}

func (j slowJournal) LoadStream(ctx context.Context, topic kernel.Topic, aggregateRef string) ([]ports.EventRecord, error) {
	records, err := j.EventJournal.LoadStream(ctx, topic, aggregateRef)
	time.Sleep(time.Millisecond)
	return records, err
}

func TestCreateKitchenOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should add a new order with one pizza per size", func(t *testing.T) {
		ctx := t.Context()
		onlineRef := kernel.NewOnlineOrderRef()
		orderRef := kernel.KitchenOrderRefFor(onlineRef)
		cmd, err := commands.NewCreateKitchenOrderCommand(onlineRef, []kernel.PizzaSize{kernel.SizeMedium, kernel.SizeLarge})
		require.NoError(t, err)

		repo := new(MockKitchenOrderRepository)
		publisher := new(MockEventPublisher)
		mock.InOrder(
			repo.On("FindByRef", ctx, orderRef).Return(nil, errs.NewObjectNotFoundError("kitchen order", orderRef.String())).Once(),
			repo.On("Add", ctx, mock.MatchedBy(func(o *kitchenorder.KitchenOrder) bool {
				return o.Ref() == orderRef && o.OnlineOrderRef() == onlineRef && len(o.Pizzas()) == 2
			})).Return(nil).Once(),
		)

		h := commands.NewCreateKitchenOrderCommandHandler(repo, publisher)
		ref, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, orderRef, ref)
		repo.AssertExpectations(t)
	})

	t.Run("should return the existing order of the online order", func(t *testing.T) {
		ctx := t.Context()
		onlineRef := kernel.NewOnlineOrderRef()
		orderRef := kernel.KitchenOrderRefFor(onlineRef)
		publisher := new(MockEventPublisher)
		publisher.On("Publish", mock.Anything, kitchenorder.Topic, mock.AnythingOfType("kitchenorder.AddedEvent")).Return(nil).Once()
		existing, err := kitchenorder.NewKitchenOrder(orderRef, onlineRef, []kernel.PizzaSize{kernel.SizeSmall}, publisher)
		require.NoError(t, err)
		require.NoError(t, existing.Create(ctx))

		cmd, err := commands.NewCreateKitchenOrderCommand(onlineRef, []kernel.PizzaSize{kernel.SizeSmall})
		require.NoError(t, err)
		repo := new(MockKitchenOrderRepository)
		repo.On("FindByRef", ctx, orderRef).Return(existing, nil).Once()

		h := commands.NewCreateKitchenOrderCommandHandler(repo, publisher)
		ref, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, orderRef, ref)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		publisher.AssertExpectations(t)
	})

	t.Run("should fail on an unconstructed command", func(t *testing.T) {
		repo := new(MockKitchenOrderRepository)
		h := commands.NewCreateKitchenOrderCommandHandler(repo, new(MockEventPublisher))

		_, err := h.Handle(t.Context(), commands.CreateKitchenOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateKitchenOrderCommandIsNotConstructed)
		repo.AssertExpectations(t)
	})

	t.Run("should surface lookup errors other than not found", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateKitchenOrderCommand(kernel.NewOnlineOrderRef(), []kernel.PizzaSize{kernel.SizeSmall})
		require.NoError(t, err)
		repo := new(MockKitchenOrderRepository)
		lookupErr := errors.New("journal unavailable")
		repo.On("FindByRef", ctx, kernel.KitchenOrderRefFor(cmd.OnlineOrderRef())).Return(nil, lookupErr).Once()

		h := commands.NewCreateKitchenOrderCommandHandler(repo, new(MockEventPublisher))
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, lookupErr)
		repo.AssertExpectations(t)
	})

	t.Run("should return the winner's ref when another caller created the order first", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateKitchenOrderCommand(kernel.NewOnlineOrderRef(), []kernel.PizzaSize{kernel.SizeSmall})
		require.NoError(t, err)
		orderRef := kernel.KitchenOrderRefFor(cmd.OnlineOrderRef())
		repo := new(MockKitchenOrderRepository)
		mock.InOrder(
			repo.On("FindByRef", ctx, orderRef).Return(nil, errs.NewObjectNotFoundError("kitchen order", orderRef.String())).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*kitchenorder.KitchenOrder")).Return(errs.NewVersionIsInvalidError("version")).Once(),
		)

		h := commands.NewCreateKitchenOrderCommandHandler(repo, new(MockEventPublisher))
		ref, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, orderRef, ref)
		repo.AssertExpectations(t)
	})

	t.Run("should return the add error", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateKitchenOrderCommand(kernel.NewOnlineOrderRef(), []kernel.PizzaSize{kernel.SizeSmall})
		require.NoError(t, err)
		repo := new(MockKitchenOrderRepository)
		addErr := errors.New("disk full")
		mock.InOrder(
			repo.On("FindByRef", ctx, mock.Anything).Return(nil, errs.NewObjectNotFoundError("kitchen order", "x")).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*kitchenorder.KitchenOrder")).Return(addErr).Once(),
		)

		h := commands.NewCreateKitchenOrderCommandHandler(repo, new(MockEventPublisher))
		ref, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, addErr)
		assert.True(t, ref.IsIdentity())
		repo.AssertExpectations(t)
	})
}

func TestCreateKitchenOrderCommandHandler_Handle_Concurrent(t *testing.T) {
	log := eventlog.NewInProcessEventLog(slowJournal{eventlog.NewMemoryJournal()}, eventlog.NewDomainCodec(), slog.New(slog.DiscardHandler))
	repo := kitchenorderrepo.NewRepository(log)
	h := commands.NewCreateKitchenOrderCommandHandler(repo, log)

	cmd, err := commands.NewCreateKitchenOrderCommand(kernel.NewOnlineOrderRef(), []kernel.PizzaSize{kernel.SizeSmall, kernel.SizeLarge})
	require.NoError(t, err)

	const callers = 8
	refs := make([]kernel.KitchenOrderRef, callers)
	errList := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs[i], errList[i] = h.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errList[i])
		assert.Equal(t, refs[0], refs[i])
	}

	orders, err := repo.FindAll(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, refs[0], orders[0].Ref())
	assert.Equal(t, cmd.OnlineOrderRef(), orders[0].OnlineOrderRef())
}
