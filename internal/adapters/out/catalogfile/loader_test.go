package catalogfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"tailorshop/internal/adapters/out/catalogfile"
	"tailorshop/internal/core/domain/model/catalog"
	"tailorshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
materials:
  blouse:
    stages: [Initial Checking, Cutting, Stitching, Final Checking, Delivery]
    production: [Cutting, Stitching]
  alteration:
    stages:
      - Initial Checking
      - Alteration Work
      - Final Checking
      - Delivery
`)

	c, err := catalogfile.Load(path)

	require.NoError(t, err)
	assert.ElementsMatch(t, []catalog.MaterialType{catalog.Blouse, catalog.Alteration}, c.MaterialTypes())

	stages, err := c.StagesFor(catalog.Blouse)
	require.NoError(t, err)
	assert.Equal(t, []string{"Initial Checking", "Cutting", "Stitching", "Final Checking", "Delivery"}, stages)
	assert.True(t, c.IsProductionStage(catalog.Blouse, "Stitching"))
	assert.True(t, c.IsProductionStage(catalog.Alteration, "Alteration Work"))

	_, err = c.StagesFor(catalog.Saree)
	require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `{
  "materials": {
    "saree": {"stages": ["Initial Checking", "Pico", "Final Checking", "Delivery"]}
  }
}`)

	c, err := catalogfile.Load(path)

	require.NoError(t, err)
	n, err := c.Len(catalog.Saree)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestLoad_Fails(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := catalogfile.Load("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalogfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
	})

	t.Run("unknown material", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", `
materials:
  kurta:
    stages: [Initial Checking, Delivery]
`)

		_, err := catalogfile.Load(path)

		require.ErrorIs(t, err, catalog.ErrUnknownMaterialType)
	})

	t.Run("path not ending in delivery", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", `
materials:
  chudi:
    stages: [Initial Checking, Cutting, Final Checking]
`)

		_, err := catalogfile.Load(path)

		require.ErrorIs(t, err, catalog.ErrPathNotTerminated)
	})

	t.Run("no materials", func(t *testing.T) {
		path := writeFile(t, "catalog.yaml", "materials: {}\n")

		_, err := catalogfile.Load(path)

		require.ErrorIs(t, err, catalog.ErrCatalogIsEmpty)
	})
}
