package errs_test

import (
	"errors"
	"testing"

	"tailorshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "3f1c")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "3f1c", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 3f1c", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("order", "3f1c", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: order, ID is: 3f1c (cause: connection reset)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("material type")

		assert.Equal(t, "value is invalid: material type", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("material type", errors.New("velvet is not known"))

		assert.Equal(t, "value is invalid: material type (cause: velvet is not known)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("workers", 100, 1, 64)

		assert.Equal(t, 100, err.Value)
		assert.Equal(t, "value is out of range: 100 is workers, min value is 1, max value is 64", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("workers", 0, 1, 64, errors.New("bad env"))

		assert.Equal(t,
			"value is out of range: 0 is workers, min value is 1, max value is 64 (cause: bad env)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("stage", "Final\nChecking", 0, 5)

		assert.Contains(t, err.Error(), "Final Checking")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("order id")
	assert.Equal(t, "value is required: order id", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("order id", errors.New("empty path segment"))
	assert.Equal(t, "value is required: order id (cause: empty path segment)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("order")
	assert.Equal(t, "version is invalid: order", err.Error())
	assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())

	withCause := errs.NewVersionIsInvalidErrorWithCause("order", errors.New("expected 3"))
	assert.Equal(t, "version is invalid: order (cause: expected 3)", withCause.Error())
}

func TestErrorsCanBeMatched(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("x"), errs.ErrVersionIsInvalid)

	var target *errs.ValueIsInvalidError
	require.ErrorAs(t, errs.NewValueIsInvalidError("x"), &target)
	assert.Equal(t, "x", target.ParamName)
}
