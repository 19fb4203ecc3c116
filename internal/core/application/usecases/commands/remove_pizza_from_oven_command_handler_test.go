package commands_test

import (
	"testing"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemovePizzaFromOvenCommandHandler_Handle(t *testing.T) {
	t.Run("should finish baking a pizza in the oven", func(t *testing.T) {
		ctx := t.Context()
		publisher := new(MockEventPublisher)
		p := preppingPizza(t, publisher)
		publisher.On("Publish", mock.Anything, pizza.Topic, mock.AnythingOfType("pizza.PrepFinishedEvent")).Return(nil).Once()
		require.NoError(t, p.FinishPrep(ctx))
		publisher.On("Publish", ctx, pizza.Topic, pizza.BakeFinishedEvent{PizzaRef: p.Ref(), KitchenOrderRef: p.KitchenOrderRef()}).Return(nil).Once()
		repo := new(MockPizzaRepository)
		repo.On("FindByRef", ctx, p.Ref()).Return(p, nil).Once()
		cmd, err := commands.NewRemovePizzaFromOvenCommand(p.Ref())
		require.NoError(t, err)

		h := commands.NewRemovePizzaFromOvenCommandHandler(repo)
		err = h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, p.HasFinishedBaking())
		publisher.AssertExpectations(t)
	})

	t.Run("should refuse a pizza that is not in the oven", func(t *testing.T) {
		ctx := t.Context()
		publisher := new(MockEventPublisher)
		p := preppingPizza(t, publisher)
		repo := new(MockPizzaRepository)
		repo.On("FindByRef", ctx, p.Ref()).Return(p, nil).Once()
		cmd, err := commands.NewRemovePizzaFromOvenCommand(p.Ref())
		require.NoError(t, err)

		h := commands.NewRemovePizzaFromOvenCommandHandler(repo)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, p.IsPrepping())
		publisher.AssertExpectations(t)
	})

	t.Run("should fail on an unconstructed command", func(t *testing.T) {
		h := commands.NewRemovePizzaFromOvenCommandHandler(new(MockPizzaRepository))

		err := h.Handle(t.Context(), commands.RemovePizzaFromOvenCommand{})

		require.ErrorIs(t, err, commands.ErrRemovePizzaFromOvenCommandIsNotConstructed)
	})
}
