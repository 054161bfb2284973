package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

// Catalog file names inside a catalog directory and the schemas that guard them.
const (
	FramesFile  = "frames.json"
	MatsFile    = "mats.json"
	GlassFile   = "glass.json"
	PricingFile = "pricing.json"

	FramesSchema  = validation.SchemaFrames
	MatsSchema    = validation.SchemaMats
	GlassSchema   = validation.SchemaGlass
	PricingSchema = validation.SchemaPricing
)

// Catalog is the read-only product data pricing resolves ids against.
type Catalog struct {
	frames []domain.FrameStyle
	mats   []domain.MatColor
	glass  []domain.GlassType
	config domain.PricingConfig

	frameByID map[string]domain.FrameStyle
	matByID   map[string]domain.MatColor
	glassByID map[string]domain.GlassType
}

// NewCatalog indexes the given product lists. Every list must be non-empty.
func NewCatalog(frames []domain.FrameStyle, mats []domain.MatColor, glass []domain.GlassType, cfg domain.PricingConfig) (*Catalog, error) {
	switch {
	case len(frames) == 0:
		return nil, errors.New("no frame styles in catalog")
	case len(mats) == 0:
		return nil, errors.New("no mat colors in catalog")
	case len(glass) == 0:
		return nil, errors.New("no glass types in catalog")
	}

	c := &Catalog{
		frames:    frames,
		mats:      mats,
		glass:     glass,
		config:    cfg,
		frameByID: make(map[string]domain.FrameStyle, len(frames)),
		matByID:   make(map[string]domain.MatColor, len(mats)),
		glassByID: make(map[string]domain.GlassType, len(glass)),
	}
	for _, f := range frames {
		c.frameByID[f.ID] = f
	}
	for _, m := range mats {
		c.matByID[m.ID] = m
	}
	for _, g := range glass {
		c.glassByID[g.ID] = g
	}
	return c, nil
}

// LoadCatalog reads and schema-validates the four catalog documents in dir.
func LoadCatalog(dir string, v validation.SchemaValidator) (*Catalog, error) {
	var (
		frames []domain.FrameStyle
		mats   []domain.MatColor
		glass  []domain.GlassType
		cfg    domain.PricingConfig
	)

	files := []struct {
		name   string
		schema validation.Schema
		target any
	}{
		{FramesFile, FramesSchema, &frames},
		{MatsFile, MatsSchema, &mats},
		{GlassFile, GlassSchema, &glass},
		{PricingFile, PricingSchema, &cfg},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if v != nil {
			if err := v.ValidateBytes(data, f.schema); err != nil {
				return nil, fmt.Errorf("%s: %w", f.name, err)
			}
		}
		if err := json.Unmarshal(data, f.target); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	return NewCatalog(frames, mats, glass, cfg)
}

func (c *Catalog) FrameStyle(id string) (domain.FrameStyle, bool) {
	f, ok := c.frameByID[id]
	return f, ok
}

func (c *Catalog) MatColor(id string) (domain.MatColor, bool) {
	m, ok := c.matByID[id]
	return m, ok
}

func (c *Catalog) GlassType(id string) (domain.GlassType, bool) {
	g, ok := c.glassByID[id]
	return g, ok
}

// FrameStyles returns frames in catalog order.
func (c *Catalog) FrameStyles() []domain.FrameStyle {
	return append([]domain.FrameStyle(nil), c.frames...)
}

func (c *Catalog) MatColors() []domain.MatColor {
	return append([]domain.MatColor(nil), c.mats...)
}

func (c *Catalog) GlassTypes() []domain.GlassType {
	return append([]domain.GlassType(nil), c.glass...)
}

func (c *Catalog) Config() domain.PricingConfig {
	return c.config
}
