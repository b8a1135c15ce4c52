package services_test

import (
	"testing"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
	"tailorshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

func legacyOrder(t *testing.T, m catalog.MaterialType, status string, stages ...string) *order.Order {
	t.Helper()
	history := make([]order.HistoryEntry, 0, len(stages))
	for i, s := range stages {
		e, err := order.NewHistoryEntry(s, start.Add(time.Duration(i)*time.Hour), "")
		require.NoError(t, err)
		history = append(history, e)
	}
	delivered := status == catalog.TerminalStage || status == "Delivered"
	o, err := order.RestoreOrder(kernel.NewUUID(), m, status, history, delivered, 1)
	require.NoError(t, err)
	return o
}

func TestStatusReconciler_Resolve(t *testing.T) {
	r := services.NewStatusReconciler(catalog.Default())

	t.Run("should match current stage names directly", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Saree, "Pico", "Initial Checking", "Falls Stitching", "Pico"))

		require.NoError(t, err)
		assert.Equal(t, 2, res.Index)
		assert.Equal(t, "Pico", res.Stage)
		assert.Equal(t, 5, res.Total)
		assert.Equal(t, services.ResolvedDirect, res.Method)
		assert.False(t, res.NeedsMigration())
		assert.NoError(t, res.Warning)
	})

	t.Run("should resolve legacy checking without production to initial check", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Blouse, "Checking", "Checking"))

		require.NoError(t, err)
		assert.Equal(t, 0, res.Index)
		assert.Equal(t, "Initial Checking", res.Stage)
		assert.Equal(t, services.ResolvedByHistory, res.Method)
		assert.True(t, res.NeedsMigration())
	})

	t.Run("should resolve legacy checking after production to final check", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Blouse, "Checking", "Checking", "Cutting"))

		require.NoError(t, err)
		assert.Equal(t, 4, res.Index)
		assert.Equal(t, "Final Checking", res.Stage)
	})

	t.Run("should treat legacy production names in history as production", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Works, "Checking", "Received", "Embroidery"))

		require.NoError(t, err)
		assert.Equal(t, "Final Checking", res.Stage)
	})

	t.Run("should rename legacy labels present in the path", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Chudi, "Stitched", "Received", "Cut", "Stitched"))

		require.NoError(t, err)
		assert.Equal(t, "Stitching", res.Stage)
		assert.Equal(t, 2, res.Index)
		assert.Equal(t, services.ResolvedByRename, res.Method)
	})

	t.Run("should not rename to a stage missing from the path", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Saree, "Hemmed", "Received"))

		require.NoError(t, err)
		assert.Equal(t, 0, res.Index)
		assert.Equal(t, services.ResolvedByFallback, res.Method)
		assert.ErrorIs(t, res.Warning, services.ErrUnresolvedLegacyStatus)
		assert.False(t, res.NeedsMigration())
	})

	t.Run("should fall back to the first stage with a warning", func(t *testing.T) {
		res, err := r.Resolve(legacyOrder(t, catalog.Others, "Lost In Transit"))

		require.NoError(t, err)
		assert.Equal(t, "Initial Checking", res.Stage)
		require.ErrorIs(t, res.Warning, services.ErrUnresolvedLegacyStatus)
		assert.Contains(t, res.Warning.Error(), "Lost In Transit")
	})

	t.Run("should fail for a material without a path", func(t *testing.T) {
		sareeOnly := services.NewStatusReconciler(catalog.MustNew(map[catalog.MaterialType]catalog.PathDefinition{
			catalog.Saree: {Stages: []string{"Initial Checking", "Final Checking", "Delivery"}},
		}))

		_, err := sareeOnly.Resolve(legacyOrder(t, catalog.Blouse, "Cutting"))

		require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
	})
}

func TestResolutionMethod_String(t *testing.T) {
	assert.Equal(t, "direct", services.ResolvedDirect.String())
	assert.Equal(t, "rename", services.ResolvedByRename.String())
	assert.Equal(t, "history", services.ResolvedByHistory.String())
	assert.Equal(t, "fallback", services.ResolvedByFallback.String())
	assert.Equal(t, "unknown", services.ResolutionMethod(0).String())
}
