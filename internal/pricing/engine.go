// Package pricing computes retail prices for frame configurations and
// specialty frame layouts.
package pricing

import "math"

// FrameBreakdown is the full trace of a frame engine v2 calculation.
type FrameBreakdown struct {
	InteriorWidth  float64 `json:"interiorWidth"`
	InteriorHeight float64 `json:"interiorHeight"`
	Perimeter      float64 `json:"perimeter"`

	FrameMaterialCost   float64 `json:"frameMaterialCost"`
	GlazingMaterialCost float64 `json:"glazingMaterialCost"`
	TotalMaterialCost   float64 `json:"totalMaterialCost"`

	Multiplier        float64 `json:"multiplier"`
	HandlingFee       float64 `json:"handlingFee"`
	OversizeSurcharge float64 `json:"oversizeSurcharge"`

	PreMarketing  float64 `json:"preMarketing"`
	WithMarketing float64 `json:"withMarketing"`

	HitFloor   bool    `json:"hitFloor"`
	FinalPrice float64 `json:"finalPrice"`
}

// LinearFeet is the moulding length needed for a rabbet of w x h inches,
// including corner waste, rounded up to whole feet.
func LinearFeet(w, h float64) float64 {
	return math.Ceil(((w+h)*2 + CornerWasteInches) / InchesPerFoot)
}

// MouldingPricePerFoot looks up a moulding SKU in the wholesale price list.
func MouldingPricePerFoot(sku string) (float64, bool) {
	ppf, ok := mouldingPricePerFoot[sku]
	return ppf, ok
}

// LegacyMouldingPrice is the pre-v2 moulding price: feet x price x markup.
// Glazing is not included.
func LegacyMouldingPrice(w, h, pricePerFoot float64) float64 {
	return LinearFeet(w, h) * pricePerFoot * MarkupFrameMoulding
}

// FramePriceWithBreakdown runs engine v2 for a rabbet of w x h inches. The
// resulting price covers moulding and glazing together.
func FramePriceWithBreakdown(w, h, pricePerFoot float64, glazing GlazingType) FrameBreakdown {
	gc, ok := glazingCosts[glazing]
	if !ok {
		gc = glazingCosts[GlazingStandardAcrylic]
	}

	frameCost := LinearFeet(w, h) * pricePerFoot
	glazingCost := w * h * gc.costPerSqIn
	material := frameCost + glazingCost
	perimeter := 2 * (w + h)

	b := FrameBreakdown{
		InteriorWidth:       w,
		InteriorHeight:      h,
		Perimeter:           perimeter,
		FrameMaterialCost:   frameCost,
		GlazingMaterialCost: glazingCost,
		TotalMaterialCost:   material,
		Multiplier:          interpolate(multiplierAnchors, material),
		HandlingFee:         interpolate(handlingAnchors, perimeter),
		OversizeSurcharge:   oversizeSurcharge(perimeter),
	}
	b.PreMarketing = material*b.Multiplier + b.HandlingFee + b.OversizeSurcharge
	b.WithMarketing = b.PreMarketing / (1 - MarketingLoad)

	rounded := roundUpTo99(b.WithMarketing)
	b.HitFloor = rounded < FloorPrice
	if b.HitFloor {
		b.FinalPrice = FloorPrice
	} else {
		b.FinalPrice = rounded
	}
	return b
}

// CompleteFramePriceBySKU prices moulding plus glazing for a priced SKU.
func CompleteFramePriceBySKU(w, h float64, sku string, glazing GlazingType) (float64, bool) {
	ppf, ok := MouldingPricePerFoot(sku)
	if !ok {
		return 0, false
	}
	return FramePriceWithBreakdown(w, h, ppf, glazing).FinalPrice, true
}

// interpolate evaluates a piecewise-linear schedule, clamping at both ends.
func interpolate(anchors []anchor, x float64) float64 {
	first, last := anchors[0], anchors[len(anchors)-1]
	if x <= first.x {
		return first.y
	}
	if x >= last.x {
		return last.y
	}
	for i := 0; i < len(anchors)-1; i++ {
		a, b := anchors[i], anchors[i+1]
		if x >= a.x && x <= b.x {
			ratio := (x - a.x) / (b.x - a.x)
			return a.y + ratio*(b.y-a.y)
		}
	}
	return last.y
}

func oversizeSurcharge(perimeter float64) float64 {
	for _, t := range oversizeThresholds {
		if perimeter >= t.perimeter {
			return t.surcharge
		}
	}
	return 0
}

// roundUpTo99 rounds up to the next whole dollar and ends the price in .99
// (15.50 -> 15.99, 16.00 -> 15.99).
func roundUpTo99(v float64) float64 {
	return math.Ceil(v) - 0.01
}
