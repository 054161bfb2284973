package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

const repoCatalogDir = "../../configs/pricing"

func TestLoadCatalog_RepositoryData(t *testing.T) {
	c, err := LoadCatalog(repoCatalogDir, validation.NewSchemaValidator())
	require.NoError(t, err)

	frame, ok := c.FrameStyle("black-classic")
	require.True(t, ok)
	assert.Equal(t, "206", frame.SKU)

	// every stocked SKU is on the moulding price list
	for _, f := range c.FrameStyles() {
		if f.SKU == "" {
			continue
		}
		_, priced := MouldingPricePerFoot(f.SKU)
		assert.True(t, priced, "frame %s sku %s", f.ID, f.SKU)
	}

	_, ok = c.GlassType(DefaultGlassTypeID)
	assert.True(t, ok, "default glass must exist")
	assert.Equal(t, 1.5, c.Config().MatMultiplier(domain.MatDouble))
}

func TestLoadCatalog_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{FramesFile, MatsFile, GlassFile, PricingFile} {
		data, err := os.ReadFile(filepath.Join(repoCatalogDir, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, GlassFile),
		[]byte(`[{"id": "", "name": "Nameless"}]`), 0o644))

	_, err := LoadCatalog(dir, validation.NewSchemaValidator())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), GlassFile)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestNewCatalog_RequiresEveryList(t *testing.T) {
	frames := []domain.FrameStyle{{ID: "f"}}
	mats := []domain.MatColor{{ID: "m"}}
	glass := []domain.GlassType{{ID: "g"}}

	_, err := NewCatalog(nil, mats, glass, domain.PricingConfig{})
	assert.Error(t, err)
	_, err = NewCatalog(frames, nil, glass, domain.PricingConfig{})
	assert.Error(t, err)
	_, err = NewCatalog(frames, mats, nil, domain.PricingConfig{})
	assert.Error(t, err)

	c, err := NewCatalog(frames, mats, glass, domain.PricingConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Config().MatMultiplier(domain.MatSingle), "unset multipliers default to 1")
}

func TestCatalog_ListsAreCopies(t *testing.T) {
	c := testCatalog(t)
	frames := c.FrameStyles()
	frames[0].ID = "mutated"

	_, ok := c.FrameStyle("oak-classic")
	assert.True(t, ok)
	assert.Equal(t, "oak-classic", c.FrameStyles()[0].ID)
}
