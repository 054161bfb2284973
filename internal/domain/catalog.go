package domain

// FrameCategory groups moulding profiles by construction.
type FrameCategory string

const (
	FrameCategoryPicture   FrameCategory = "picture"
	FrameCategoryShadowbox FrameCategory = "shadowbox"
	FrameCategoryCanvas    FrameCategory = "canvas"
)

// FrameStyle is a moulding profile offered in the designer. SKU links it to
// the moulding price list; styles without a priced SKU use PricePerInch.
type FrameStyle struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	SKU           string        `json:"sku,omitempty"`
	Material      string        `json:"material"`
	Color         string        `json:"color"`
	BorderColor   string        `json:"borderColor"`
	PricePerInch  float64       `json:"pricePerInch"`
	MouldingWidth float64       `json:"mouldingWidth"`
	Category      FrameCategory `json:"category"`
}

// MatColor is a mat choice as known to the pricing catalog. Name keys the
// sheet price list.
type MatColor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HexColor     string  `json:"hexColor"`
	PricePerInch float64 `json:"pricePerInch,omitempty"`
}

type GlassType struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerSqFt float64 `json:"pricePerSqFt"`
}

// OversizeTier is a band of united inches (width + height).
type OversizeTier struct {
	MinDimension float64 `json:"minDimension"`
	MaxDimension float64 `json:"maxDimension,omitempty"`
	Fee          float64 `json:"fee,omitempty"`
}

type OversizeFees struct {
	Threshold75to99  OversizeTier `json:"threshold75to99"`
	Threshold100Plus OversizeTier `json:"threshold100Plus"`
}

type PrintAndFramePricing struct {
	PricePerSquareInch float64 `json:"pricePerSquareInch"`
}

// PricingConfig holds the tunable parameters of configuration pricing.
type PricingConfig struct {
	MatMultipliers map[MatType]float64  `json:"matMultipliers"`
	PrintAndFrame  PrintAndFramePricing `json:"printAndFrame"`
	OversizeFees   OversizeFees         `json:"oversizeFees"`
}

// MatMultiplier returns the configured multiplier for t, defaulting to 1.
func (p PricingConfig) MatMultiplier(t MatType) float64 {
	if m, ok := p.MatMultipliers[t]; ok {
		return m
	}
	return 1.0
}
