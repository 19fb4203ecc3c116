package commands_test

import (
	"testing"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartOrderPrepCommand(t *testing.T) {
	t.Run("should keep the ref", func(t *testing.T) {
		ref := kernel.NewKitchenOrderRef()

		cmd, err := commands.NewStartOrderPrepCommand(ref)

		require.NoError(t, err)
		assert.Equal(t, ref, cmd.KitchenOrderRef())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should reject an identity ref", func(t *testing.T) {
		_, err := commands.NewStartOrderPrepCommand(kernel.KitchenOrderRef{})

		require.ErrorIs(t, err, kernel.ErrRefIsNotConstructed)
	})

	t.Run("should fail validation when built without the constructor", func(t *testing.T) {
		require.ErrorIs(t, commands.StartOrderPrepCommand{}.Validate(), commands.ErrStartOrderPrepCommandIsNotConstructed)
	})
}
