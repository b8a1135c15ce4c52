package commands_test

import (
	"testing"

	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceOrderStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewAdvanceOrderStatusCommand(id, "  Final Checking ", " rush ")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "Final Checking", cmd.Target())
	assert.Equal(t, "rush", cmd.Notes())
}

func TestNewAdvanceOrderStatusCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewAdvanceOrderStatusCommand(kernel.UUID{}, "", "")
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestAdvanceOrderStatusCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.AdvanceOrderStatusCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrAdvanceOrderStatusCommandIsNotConstructed)
}
