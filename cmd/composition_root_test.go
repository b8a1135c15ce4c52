package cmd_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"tailorshop/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewCompositionRoot(t *testing.T) {
	t.Run("in-process defaults", func(t *testing.T) {
		app, err := cmd.NewCompositionRoot(t.Context(), cmd.Config{MigrationWorkers: 2}, nil, discardLogger())

		require.NoError(t, err)
		assert.NotNil(t, app.CreateHTTPServer())
		assert.NotNil(t, app.CreateCLIApp().AdvanceOrderStatusHandler)
		assert.NotNil(t, app.CreateJobManager())
		require.NoError(t, app.Close())
	})

	t.Run("unknown lock backend", func(t *testing.T) {
		_, err := cmd.NewCompositionRoot(t.Context(), cmd.Config{LockBackend: "etcd"}, nil, discardLogger())

		require.ErrorContains(t, err, "LOCK_BACKEND")
	})

	t.Run("unknown events broker", func(t *testing.T) {
		_, err := cmd.NewCompositionRoot(t.Context(), cmd.Config{EventsBroker: "nats"}, nil, discardLogger())

		require.ErrorContains(t, err, "EVENTS_BROKER")
	})

	t.Run("missing catalog file", func(t *testing.T) {
		configs := cmd.Config{CatalogFile: filepath.Join(t.TempDir(), "catalog.yaml")}

		_, err := cmd.NewCompositionRoot(t.Context(), configs, nil, discardLogger())

		require.Error(t, err)
	})
}
