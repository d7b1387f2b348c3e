package commands_test

import (
	"testing"

	"resale/internal/core/application/usecases/commands"
	"resale/internal/core/domain/model/kernel"
	"resale/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("should create command with valid params", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(
			kernel.OrderNumber("ORD-123456789012"), sellerID, order.Processing)

		require.NoError(t, err)
		assert.Equal(t, "ORD-123456789012", cmd.OrderNumber().String())
		assert.Equal(t, sellerID, cmd.RequesterID())
		assert.Equal(t, order.Processing, cmd.Target())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("should reject invalid params", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.OrderNumber(""), sellerID, order.Processing)
		require.Error(t, err)

		_, err = commands.NewChangeOrderStatusCommand(kernel.OrderNumber("ORD-1"), 0, order.Processing)
		require.Error(t, err)

		_, err = commands.NewChangeOrderStatusCommand(kernel.OrderNumber("ORD-1"), sellerID, order.Unknown)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ChangeOrderStatusCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
	})
}
