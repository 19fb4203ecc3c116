package commands_test

import (
	"testing"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createdOrder(t *testing.T, publisher *MockEventPublisher) *kitchenorder.KitchenOrder {
	t.Helper()
	publisher.On("Publish", mock.Anything, kitchenorder.Topic, mock.AnythingOfType("kitchenorder.AddedEvent")).Return(nil).Once()
	o, err := kitchenorder.NewKitchenOrder(kernel.NewKitchenOrderRef(), kernel.NewOnlineOrderRef(), []kernel.PizzaSize{kernel.SizeLarge}, publisher)
	require.NoError(t, err)
	require.NoError(t, o.Create(t.Context()))
	return o
}

func TestStartOrderPrepCommandHandler_Handle(t *testing.T) {
	t.Run("should start prep on the loaded order", func(t *testing.T) {
		ctx := t.Context()
		publisher := new(MockEventPublisher)
		order := createdOrder(t, publisher)
		publisher.On("Publish", ctx, kitchenorder.Topic, kitchenorder.PrepStartedEvent{KitchenOrderRef: order.Ref()}).Return(nil).Once()

		repo := new(MockKitchenOrderRepository)
		repo.On("FindByRef", ctx, order.Ref()).Return(order, nil).Once()
		cmd, err := commands.NewStartOrderPrepCommand(order.Ref())
		require.NoError(t, err)

		h := commands.NewStartOrderPrepCommandHandler(repo)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, order.IsPrepping())
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should refuse an order already in prep", func(t *testing.T) {
		ctx := t.Context()
		publisher := new(MockEventPublisher)
		order := createdOrder(t, publisher)
		publisher.On("Publish", mock.Anything, kitchenorder.Topic, mock.AnythingOfType("kitchenorder.PrepStartedEvent")).Return(nil).Once()
		require.NoError(t, order.StartPrep(ctx))

		repo := new(MockKitchenOrderRepository)
		repo.On("FindByRef", ctx, order.Ref()).Return(order, nil).Once()
		cmd, err := commands.NewStartOrderPrepCommand(order.Ref())
		require.NoError(t, err)

		h := commands.NewStartOrderPrepCommandHandler(repo)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		publisher.AssertExpectations(t)
	})

	t.Run("should return not found for an unknown order", func(t *testing.T) {
		ctx := t.Context()
		ref := kernel.NewKitchenOrderRef()
		repo := new(MockKitchenOrderRepository)
		repo.On("FindByRef", ctx, ref).Return(nil, errs.NewObjectNotFoundError("kitchen order", ref.String())).Once()
		cmd, err := commands.NewStartOrderPrepCommand(ref)
		require.NoError(t, err)

		h := commands.NewStartOrderPrepCommandHandler(repo)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail on an unconstructed command", func(t *testing.T) {
		repo := new(MockKitchenOrderRepository)
		h := commands.NewStartOrderPrepCommandHandler(repo)

		err := h.Handle(t.Context(), commands.StartOrderPrepCommand{})

		require.ErrorIs(t, err, commands.ErrStartOrderPrepCommandIsNotConstructed)
		repo.AssertExpectations(t)
	})
}
