package pricing

import (
	"fmt"
	"strings"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// Breakdown is the price of one framed configuration. When the frame engine
// v2 priced the moulding, FramePrice already includes glazing and GlassPrice
// is zero; callers must never add glass on top of FramePrice.
type Breakdown struct {
	FramePrice      float64 `json:"framePrice"`
	MatPrice        float64 `json:"matPrice"`
	GlassPrice      float64 `json:"glassPrice"`
	PrintPrice      float64 `json:"printPrice"`
	OversizeFee     float64 `json:"oversizeFee"`
	Subtotal        float64 `json:"subtotal"`
	Total           float64 `json:"total"`
	IsTooLarge      bool    `json:"isTooLarge"`
	TotalDimensions float64 `json:"totalDimensions"`
	// EngineV2 reports whether moulding and glazing were priced together.
	EngineV2 bool `json:"engineV2"`
}

// Calculator prices configurations against a catalog.
type Calculator struct {
	catalog *Catalog
}

func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Catalog returns the catalog the calculator resolves ids against.
func (c *Calculator) Catalog() *Catalog {
	return c.catalog
}

// Calculate prices cfg. Unknown frame, glass or (when matted) mat ids are
// errors. Dimensions are not otherwise validated here; use
// serialization.Validate for that.
func (c *Calculator) Calculate(cfg domain.FrameConfiguration) (*Breakdown, error) {
	if cfg.ArtworkWidth <= 0 || cfg.ArtworkHeight <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgInvalidDimensions)
	}

	frame, ok := c.catalog.FrameStyle(cfg.FrameStyleID)
	if !ok {
		return nil, fmt.Errorf("%w: "+ErrMsgFrameStyleNotFound, domain.ErrFrameStyleNotFound, cfg.FrameStyleID)
	}
	mat, matFound := c.catalog.MatColor(cfg.MatColorID)
	if !matFound && cfg.HasMat() {
		return nil, fmt.Errorf("%w: "+ErrMsgMatColorNotFound, domain.ErrMatColorNotFound, cfg.MatColorID)
	}
	glass, ok := c.catalog.GlassType(cfg.GlassTypeID)
	if !ok {
		return nil, fmt.Errorf("%w: "+ErrMsgGlassTypeNotFound, domain.ErrGlassTypeNotFound, cfg.GlassTypeID)
	}
	pc := c.catalog.Config()

	border := 0.0
	if cfg.HasMat() {
		border = cfg.MatBorderWidth
	}
	extra := 0.0
	if cfg.BottomWeighted {
		extra = BottomWeightedExtra
	}
	frameW := cfg.ArtworkWidth + border*2
	frameH := cfg.ArtworkHeight + border*2 + extra
	perimeter := (frameW + frameH) * 2

	glazing := glazingFor(glass)
	b := &Breakdown{}

	if ppf, priced := MouldingPricePerFoot(frame.SKU); frame.SKU != "" && priced {
		b.FramePrice = FramePriceWithBreakdown(frameW, frameH, ppf, glazing).FinalPrice
		b.EngineV2 = true
	} else {
		b.FramePrice = perimeter * frame.PricePerInch
		gc := glazingCosts[glazing]
		b.GlassPrice = frameW * frameH * gc.costPerSqIn * gc.designerMarkup
	}

	if cfg.HasMat() {
		mult := pc.MatMultiplier(cfg.MatType)
		if single, ok := MatPriceForDesigner(frameW, frameH, mat.Name); ok {
			b.MatPrice = single * mult
		} else {
			ppi := mat.PricePerInch
			if ppi == 0 {
				ppi = DefaultMatPricePerInch
			}
			b.MatPrice = perimeter * ppi * mult
		}
	}

	if cfg.ServiceType == domain.ServicePrintAndFrame && cfg.ImageURL != "" {
		b.PrintPrice = cfg.ArtworkWidth * cfg.ArtworkHeight * pc.PrintAndFrame.PricePerSquareInch
	}

	b.TotalDimensions = frameW + frameH
	tiers := pc.OversizeFees
	switch {
	case tiers.Threshold100Plus.MinDimension > 0 && b.TotalDimensions >= tiers.Threshold100Plus.MinDimension:
		b.IsTooLarge = true
	case b.TotalDimensions >= tiers.Threshold75to99.MinDimension && b.TotalDimensions <= tiers.Threshold75to99.MaxDimension:
		b.OversizeFee = tiers.Threshold75to99.Fee
	}

	b.Subtotal = b.FramePrice + b.MatPrice + b.GlassPrice + b.PrintPrice
	b.Total = b.Subtotal + b.OversizeFee
	return b, nil
}

// glazingFor maps a catalog glass type to its glazing cost row.
func glazingFor(g domain.GlassType) GlazingType {
	if strings.Contains(g.ID, nonGlareMarker) || strings.Contains(strings.ToLower(g.Name), nonGlareMarker) {
		return GlazingNonGlareAcrylic
	}
	return GlazingStandardAcrylic
}
