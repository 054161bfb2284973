package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearFeet(t *testing.T) {
	assert.Equal(t, 4.0, LinearFeet(8, 10))  // (36+8)/12 = 3.67
	assert.Equal(t, 2.0, LinearFeet(2, 2))   // (8+8)/12 = 1.33
	assert.Equal(t, 5.0, LinearFeet(10, 14)) // (48+8)/12 = 4.67
	assert.Equal(t, 4.0, LinearFeet(10, 10)) // (40+8)/12 = 4 exactly
}

func TestFramePriceWithBreakdown_EightByTen(t *testing.T) {
	b := FramePriceWithBreakdown(8, 10, 0.75, GlazingStandardAcrylic)

	assert.InDelta(t, 3.0, b.FrameMaterialCost, 1e-9)
	assert.InDelta(t, 0.2592, b.GlazingMaterialCost, 1e-9)
	assert.InDelta(t, 6.0, b.Multiplier, 1e-9)
	assert.InDelta(t, 8.0, b.HandlingFee, 1e-9)
	assert.Zero(t, b.OversizeSurcharge)
	assert.InDelta(t, 27.5552, b.PreMarketing, 1e-9)
	assert.InDelta(t, 27.5552/0.875, b.WithMarketing, 1e-9)
	assert.False(t, b.HitFloor)
	assert.InDelta(t, 31.99, b.FinalPrice, 1e-9)
}

func TestFramePriceWithBreakdown_Floor(t *testing.T) {
	b := FramePriceWithBreakdown(2, 2, 0.45, GlazingStandardAcrylic)

	assert.True(t, b.HitFloor)
	assert.InDelta(t, FloorPrice, b.FinalPrice, 1e-9)
}

func TestFramePriceWithBreakdown_NonGlareCostsMore(t *testing.T) {
	std := FramePriceWithBreakdown(16, 20, 1.14, GlazingStandardAcrylic)
	ng := FramePriceWithBreakdown(16, 20, 1.14, GlazingNonGlareAcrylic)

	assert.Greater(t, ng.GlazingMaterialCost, std.GlazingMaterialCost)
	assert.GreaterOrEqual(t, ng.FinalPrice, std.FinalPrice)
}

func TestFramePriceWithBreakdown_UnknownGlazingUsesStandard(t *testing.T) {
	got := FramePriceWithBreakdown(8, 10, 0.75, GlazingType("MYSTERY"))
	want := FramePriceWithBreakdown(8, 10, 0.75, GlazingStandardAcrylic)
	assert.Equal(t, want, got)
}

func TestFramePriceWithBreakdown_EndsInNinetyNine(t *testing.T) {
	sizes := [][2]float64{{5, 7}, {8, 10}, {11, 14}, {16, 20}, {24, 36}, {30, 40}}
	for _, s := range sizes {
		b := FramePriceWithBreakdown(s[0], s[1], 1.22, GlazingStandardAcrylic)
		cents := int(b.FinalPrice*100+0.5) % 100
		assert.Equal(t, 99, cents, "size %vx%v priced %v", s[0], s[1], b.FinalPrice)
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name    string
		anchors []anchor
		x       float64
		want    float64
	}{
		{"below first clamps", handlingAnchors, 4, 6},
		{"on anchor", handlingAnchors, 72, 11},
		{"between anchors", handlingAnchors, 54, 9.5},
		{"above last clamps", handlingAnchors, 400, 32},
		{"multiplier flat start", multiplierAnchors, 7, 6.0},
		{"multiplier midpoint", multiplierAnchors, 17.5, 5.6},
		{"multiplier tail", multiplierAnchors, 1000, 2.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, interpolate(tt.anchors, tt.x), 1e-9)
		})
	}
}

func TestOversizeSurcharge(t *testing.T) {
	assert.Zero(t, oversizeSurcharge(100))
	assert.Equal(t, 15.0, oversizeSurcharge(120))
	assert.Equal(t, 15.0, oversizeSurcharge(139.5))
	assert.Equal(t, 25.0, oversizeSurcharge(140))
}

func TestRoundUpTo99(t *testing.T) {
	assert.InDelta(t, 15.99, roundUpTo99(15.5), 1e-9)
	assert.InDelta(t, 15.99, roundUpTo99(16.0), 1e-9)
	assert.InDelta(t, 16.99, roundUpTo99(16.01), 1e-9)
}

func TestCompleteFramePriceBySKU(t *testing.T) {
	price, ok := CompleteFramePriceBySKU(8, 10, "206", GlazingStandardAcrylic)
	assert.True(t, ok)
	assert.InDelta(t, 31.99, price, 1e-9)

	_, ok = CompleteFramePriceBySKU(8, 10, "no-such-sku", GlazingStandardAcrylic)
	assert.False(t, ok)
}

func TestLegacyMouldingPrice(t *testing.T) {
	assert.InDelta(t, 4*0.75*MarkupFrameMoulding, LegacyMouldingPrice(8, 10, 0.75), 1e-9)
}

func TestSheetFraction(t *testing.T) {
	tests := []struct {
		w, h     float64
		fraction float64
		ok       bool
	}{
		{12, 14, 0.25, true},
		{20, 16, 0.25, true}, // orientation does not matter
		{18, 24, 0.5, true},
		{24, 36, 1.0, true},
		{32, 40, 1.0, true},
		{33, 40, 0, false},
		{30, 44, 0, false},
	}
	for _, tt := range tests {
		fraction, ok := SheetFraction(tt.w, tt.h)
		assert.Equal(t, tt.ok, ok, "%vx%v", tt.w, tt.h)
		assert.Equal(t, tt.fraction, fraction, "%vx%v", tt.w, tt.h)
	}
}

func TestMatCost(t *testing.T) {
	cost, ok := MatCost(12, 14, "White")
	assert.True(t, ok)
	assert.InDelta(t, 0.865, cost, 1e-9)

	cost, ok = MatCost(36, 48, "Black")
	assert.True(t, ok)
	assert.InDelta(t, 11.85, cost, 1e-9)

	_, ok = MatCost(12, 14, "Cream")
	assert.False(t, ok)

	designer, ok := MatPriceForDesigner(12, 14, "White")
	assert.True(t, ok)
	assert.InDelta(t, 0.865*MarkupMatInFrameDesigner, designer, 1e-9)
}

func BenchmarkFramePriceWithBreakdown(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FramePriceWithBreakdown(16, 20, 1.22, GlazingNonGlareAcrylic)
	}
}
