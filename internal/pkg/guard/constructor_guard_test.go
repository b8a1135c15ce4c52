package guard_test

import (
	"errors"
	"testing"

	"tailorshop/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("AdvanceOrderStatusCommand must be created via its constructor")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	type ticket struct {
		stage string
		guard guard.ConstructorGuard
	}

	newTicket := func(stage string) (ticket, error) {
		if stage == "" {
			return ticket{}, errors.New("stage is required")
		}
		return ticket{stage: stage, guard: guard.NewConstructorGuard()}, nil
	}

	valid, err := newTicket("Cutting")
	require.NoError(t, err)
	require.NoError(t, valid.guard.Validate(errTicketNotConstructed))

	var zero ticket
	assert.Equal(t, errTicketNotConstructed, zero.guard.Validate(errTicketNotConstructed))

	_, err = newTicket("")
	require.EqualError(t, err, "stage is required")
}
