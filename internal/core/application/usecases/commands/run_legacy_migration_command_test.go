package commands_test

import (
	"testing"

	"tailorshop/internal/core/application/usecases/commands"
	"tailorshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunLegacyMigrationCommand(t *testing.T) {
	cmd, err := commands.NewRunLegacyMigrationCommand(8)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, 8, cmd.Workers())

	for _, workers := range []int{0, -1, commands.MaxMigrationWorkers + 1} {
		_, err = commands.NewRunLegacyMigrationCommand(workers)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	}
}
