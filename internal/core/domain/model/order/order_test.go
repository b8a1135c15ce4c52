package order_test

import (
	"testing"
	"time"

	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/core/domain/model/kernel"
	"tailorshop/internal/core/domain/model/order"
	"tailorshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receivedAt = time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	stages := catalog.Default()

	t.Run("should start at the first stage with one history entry", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, catalog.Blouse, stages, receivedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, catalog.Blouse, o.MaterialType())
		assert.Equal(t, "Initial Checking", o.CurrentStatus())
		assert.False(t, o.IsDelivered())
		assert.Equal(t, 0, o.Version())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, "Initial Checking", history[0].Stage())
		assert.Equal(t, receivedAt, history[0].CompletedAt())
		assert.Equal(t, order.ReceivedNotes, history[0].Notes())
	})

	t.Run("should fail with invalid id", func(t *testing.T) {
		var id kernel.UUID

		o, err := order.NewOrder(id, catalog.Blouse, stages, receivedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unknown material type", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), catalog.UnknownMaterial, stages, receivedAt)

		require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
		assert.Nil(t, o)
	})

	t.Run("should fail when catalog has no path for the material", func(t *testing.T) {
		sareeOnly := catalog.MustNew(map[catalog.MaterialType]catalog.PathDefinition{
			catalog.Saree: {Stages: []string{"Initial Checking", "Delivery"}},
		})

		_, err := order.NewOrder(kernel.NewUUID(), catalog.Blouse, sareeOnly, receivedAt)

		require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
	})

	t.Run("should fail without catalog", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), catalog.Blouse, nil, receivedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail without received time", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), catalog.Blouse, stages, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	entry, err := order.NewHistoryEntry("Checking", receivedAt, "")
	require.NoError(t, err)

	t.Run("should keep legacy status verbatim", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), catalog.Blouse, "Checking", []order.HistoryEntry{entry}, false, 3)

		require.NoError(t, err)
		assert.Equal(t, "Checking", o.CurrentStatus())
		assert.Equal(t, 3, o.Version())
		assert.Len(t, o.History(), 1)
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.UUID{}, catalog.UnknownMaterial, " ", nil, false, -1)

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreOrderByMaterialName(t *testing.T) {
	entry, err := order.NewHistoryEntry("Final Checking", receivedAt, "")
	require.NoError(t, err)

	t.Run("should parse a known name", func(t *testing.T) {
		o, err := order.RestoreOrderByMaterialName(kernel.NewUUID(), " Saree ", "Pico", nil, false, 1)

		require.NoError(t, err)
		assert.Equal(t, catalog.Saree, o.MaterialType())
		assert.Equal(t, "saree", o.MaterialName())
	})

	t.Run("should keep an unrecognized name", func(t *testing.T) {
		o, err := order.RestoreOrderByMaterialName(kernel.NewUUID(), "lehenga", "Final Checking",
			[]order.HistoryEntry{entry}, false, 2)

		require.NoError(t, err)
		assert.Equal(t, catalog.UnknownMaterial, o.MaterialType())
		assert.Equal(t, "lehenga", o.MaterialName())
		assert.Equal(t, "Final Checking", o.CurrentStatus())
		assert.Equal(t, "lehenga", o.Clone().MaterialName())
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := order.RestoreOrderByMaterialName(kernel.NewUUID(), "  ", "Pico", nil, false, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	var zero order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())

	var nilOrder *order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestOrder_RecordStage(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), catalog.Others, catalog.Default(), receivedAt)
	require.NoError(t, err)

	t.Run("should append and move current status", func(t *testing.T) {
		before := o.History()

		err := o.RecordStage("Work In Progress", receivedAt.Add(time.Hour), "stitching started", false)

		require.NoError(t, err)
		after := o.History()
		require.Len(t, after, len(before)+1)
		assert.Equal(t, before, after[:len(before)])
		assert.Equal(t, "Work In Progress", o.CurrentStatus())
		assert.False(t, o.IsDelivered())
	})

	t.Run("should set delivered flag from caller", func(t *testing.T) {
		require.NoError(t, o.RecordStage("Delivery", receivedAt.Add(2*time.Hour), "", true))

		assert.True(t, o.IsDelivered())
	})

	t.Run("should reject blank stage without changes", func(t *testing.T) {
		before := o.History()

		err := o.RecordStage("", receivedAt, "", false)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, before, o.History())
		assert.Equal(t, "Delivery", o.CurrentStatus())
	})
}

func TestOrder_Clone(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), catalog.Saree, catalog.Default(), receivedAt)
	require.NoError(t, err)

	c := o.Clone()
	require.NoError(t, c.RecordStage("Falls Stitching", receivedAt.Add(time.Minute), "", false))

	assert.True(t, c.IsEqual(o))
	assert.Len(t, o.History(), 1)
	assert.Len(t, c.History(), 2)
	assert.Equal(t, "Initial Checking", o.CurrentStatus())
}

func TestOrder_Rename(t *testing.T) {
	entry, err := order.NewHistoryEntry("Received", receivedAt, "")
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), catalog.Chudi, "Received", []order.HistoryEntry{entry}, false, 1)
	require.NoError(t, err)

	require.NoError(t, o.Rename("Initial Checking", false))

	assert.Equal(t, "Initial Checking", o.CurrentStatus())
	assert.Len(t, o.History(), 1)
	assert.Equal(t, "Received", o.History()[0].Stage())
	require.Error(t, o.Rename("", false))
}

func TestHistory_IsACopy(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), catalog.Works, catalog.Default(), receivedAt)
	require.NoError(t, err)

	h := o.History()
	h[0], _ = order.NewHistoryEntry("Tampered", receivedAt, "")

	assert.Equal(t, "Initial Checking", o.History()[0].Stage())
}
