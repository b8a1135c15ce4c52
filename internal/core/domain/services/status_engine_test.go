package services_test

import (
	"testing"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
	"tailorshop/internal/core/domain/services"
	"tailorshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Hour)
		return now
	}
}

func newOrder(t *testing.T, m catalog.MaterialType) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), m, catalog.Default(), start)
	require.NoError(t, err)
	return o
}

func TestStatusEngine_Advance_BlousePath(t *testing.T) {
	engine := services.NewStatusEngine(catalog.Default(), fixedClock())
	o := newOrder(t, catalog.Blouse)

	for _, want := range []string{"Cutting", "Stitching", "Hemming", "Final Checking"} {
		res, err := engine.Advance(o, services.AdvanceRequest{})
		require.NoError(t, err)
		assert.Equal(t, want, res.NextStage)
		assert.False(t, res.IsFinalStage)
		assert.False(t, res.Order.IsDelivered())
		o = res.Order
	}

	res, err := engine.Advance(o, services.AdvanceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Delivery", res.NextStage)
	assert.Equal(t, "Final Checking", res.PreviousStage)
	assert.True(t, res.IsFinalStage)
	assert.True(t, res.Order.IsDelivered())
	assert.Len(t, res.Order.History(), 6)

	_, err = engine.Advance(res.Order, services.AdvanceRequest{})
	require.ErrorIs(t, err, services.ErrAlreadyAtFinalStage)
}

func TestStatusEngine_Advance_IsMonotonic(t *testing.T) {
	c := catalog.Default()
	engine := services.NewStatusEngine(c, fixedClock())

	for _, m := range c.MaterialTypes() {
		t.Run(m.String(), func(t *testing.T) {
			o := newOrder(t, m)
			total, err := c.Len(m)
			require.NoError(t, err)

			prev := 0
			for range total - 1 {
				res, err := engine.Advance(o, services.AdvanceRequest{})
				require.NoError(t, err)

				now, err := engine.ResolveIndex(res.Order)
				require.NoError(t, err)
				assert.Equal(t, prev+1, now.Index)
				assert.Len(t, res.Order.History(), len(o.History())+1)
				assert.Equal(t, o.History(), res.Order.History()[:len(o.History())])
				assert.Equal(t, now.IsTerminal(), res.Order.IsDelivered())

				prev = now.Index
				o = res.Order
			}

			_, err = engine.Advance(o, services.AdvanceRequest{})
			require.ErrorIs(t, err, services.ErrAlreadyAtFinalStage)
		})
	}
}

func TestStatusEngine_Advance(t *testing.T) {
	engine := services.NewStatusEngine(catalog.Default(), fixedClock())

	t.Run("should leave the input order untouched", func(t *testing.T) {
		o := newOrder(t, catalog.Chudi)

		res, err := engine.Advance(o, services.AdvanceRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Initial Checking", o.CurrentStatus())
		assert.Len(t, o.History(), 1)
		assert.Equal(t, "Cutting", res.Order.CurrentStatus())
	})

	t.Run("should write default and custom notes", func(t *testing.T) {
		o := newOrder(t, catalog.Saree)

		res, err := engine.Advance(o, services.AdvanceRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Moved to Falls Stitching", res.Order.History()[1].Notes())

		res, err = engine.Advance(res.Order, services.AdvanceRequest{Notes: "  pico done early "})
		require.NoError(t, err)
		assert.Equal(t, "pico done early", res.Order.History()[2].Notes())
	})

	t.Run("should skip forward to an explicit target", func(t *testing.T) {
		o := newOrder(t, catalog.Works)

		res, err := engine.Advance(o, services.AdvanceRequest{Target: "Final Checking"})

		require.NoError(t, err)
		assert.Equal(t, "Final Checking", res.NextStage)
		assert.Len(t, res.Order.History(), 2)
	})

	t.Run("should deliver on an explicit Delivery target", func(t *testing.T) {
		o := newOrder(t, catalog.Alteration)

		res, err := engine.Advance(o, services.AdvanceRequest{Target: "Delivery"})

		require.NoError(t, err)
		assert.True(t, res.IsFinalStage)
		assert.True(t, res.Order.IsDelivered())
	})

	t.Run("should reject targets that are not ahead", func(t *testing.T) {
		o := newOrder(t, catalog.Blouse)
		res, err := engine.Advance(o, services.AdvanceRequest{Target: "Hemming"})
		require.NoError(t, err)

		for _, target := range []string{"Hemming", "Cutting", "Pico", "Nowhere"} {
			_, err := engine.Advance(res.Order, services.AdvanceRequest{Target: target})
			require.ErrorIs(t, err, services.ErrInvalidTransitionTarget, target)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, target)
		}
		assert.Len(t, res.Order.History(), 2)
	})

	t.Run("should reject any target on a delivered order", func(t *testing.T) {
		o := legacyOrder(t, catalog.Others, "Delivered", "Received", "Delivered")

		_, err := engine.Advance(o, services.AdvanceRequest{Target: "Final Checking"})

		require.ErrorIs(t, err, services.ErrAlreadyAtFinalStage)
	})

	t.Run("should advance a legacy order from its resolved stage", func(t *testing.T) {
		o := legacyOrder(t, catalog.Blouse, "Checking", "Checking", "Cutting")

		res, err := engine.Advance(o, services.AdvanceRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Final Checking", res.PreviousStage)
		assert.Equal(t, "Delivery", res.NextStage)
		assert.Equal(t, services.ResolvedByHistory, res.Resolution.Method)
	})

	t.Run("should surface the fallback warning without failing", func(t *testing.T) {
		o := legacyOrder(t, catalog.Saree, "Mystery")

		res, err := engine.Advance(o, services.AdvanceRequest{})

		require.NoError(t, err)
		assert.Equal(t, "Falls Stitching", res.NextStage)
		assert.ErrorIs(t, res.Resolution.Warning, services.ErrUnresolvedLegacyStatus)
	})

	t.Run("should reject orders not built by a constructor", func(t *testing.T) {
		_, err := engine.Advance(&order.Order{}, services.AdvanceRequest{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})

	t.Run("should use the injected clock", func(t *testing.T) {
		at := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
		e := services.NewStatusEngine(catalog.Default(), func() time.Time { return at })

		res, err := e.Advance(newOrder(t, catalog.Others), services.AdvanceRequest{})

		require.NoError(t, err)
		assert.Equal(t, at, res.Order.History()[1].CompletedAt())
	})
}
