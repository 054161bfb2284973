package pricing

// Markups applied to wholesale cost.
const (
	MarkupFrameMoulding      = 8.0
	MarkupDesignerStandard   = 8.0
	MarkupMatInFrameDesigner = 2.5
)

// Frame engine v2 parameters.
const (
	MarketingLoad = 0.125
	FloorPrice    = 15.99

	// linear feet are measured on the rabbet perimeter plus corner waste
	CornerWasteInches = 8.0
	InchesPerFoot     = 12.0
)

// anchor is one point of a piecewise-linear schedule.
type anchor struct {
	x, y float64
}

// handlingAnchors maps perimeter inches to a handling fee.
var handlingAnchors = []anchor{
	{16, 6},
	{36, 8},
	{72, 11},
	{88, 15},
	{120, 23},
	{140, 32},
}

// multiplierAnchors maps total material cost to a retail multiplier.
var multiplierAnchors = []anchor{
	{0, 6.0},
	{10, 6.0},
	{25, 5.2},
	{60, 4.4},
	{120, 3.6},
	{200, 3.0},
	{400, 2.6},
}

// oversizeThresholds are checked in order; the first match wins.
var oversizeThresholds = []struct {
	perimeter float64
	surcharge float64
}{
	{140, 25},
	{120, 15},
}

// GlazingType selects the glazing cost row.
type GlazingType string

const (
	GlazingStandardAcrylic GlazingType = "STANDARD_ACRYLIC"
	GlazingNonGlareAcrylic GlazingType = "NON_GLARE_ACRYLIC"
	GlazingStandardGlass   GlazingType = "STANDARD_GLASS"
	GlazingNonGlareGlass   GlazingType = "NON_GLARE_GLASS"
)

type glazingCost struct {
	costPerSqIn    float64
	designerMarkup float64
	minimumPrice   float64
}

var glazingCosts = map[GlazingType]glazingCost{
	GlazingStandardAcrylic: {0.00324, MarkupDesignerStandard, 9.95},
	GlazingNonGlareAcrylic: {0.00449, MarkupDesignerStandard, 12.95},
	GlazingStandardGlass:   {0.00324, MarkupDesignerStandard, 9.95},
	GlazingNonGlareGlass:   {0.00449, MarkupDesignerStandard, 12.95},
}

// mouldingPricePerFoot is the wholesale price list keyed by moulding SKU,
// covering picture, shadowbox and canvas profiles.
var mouldingPricePerFoot = map[string]float64{
	// picture
	"206":  0.75,
	"6301": 1.14,
	"6711": 1.24,
	"8446": 1.22,
	"8989": 0.45,
	"9935": 1.0,
	// shadowbox
	"8693": 0.72,
	"8990": 0.72,
	"9448": 1.81,
	// canvas
	"10117": 0.8,
	"10104": 1.14,
	"10105": 1.14,
}

// matSheetPrice is the wholesale cost of one mat sheet, keyed by color name.
type matSheetPrice struct {
	sku32x40   string
	price32x40 float64
	sku40x60   string
	price40x60 float64 // zero when not stocked oversize
}

var matSheetPrices = map[string]matSheetPrice{
	"White": {"VB222", 3.46, "VB8222", 11.85},
	"Black": {"VB221", 3.46, "VB8221", 11.85},
}

// Sheet fraction bounds in inches (short side, long side).
const (
	quarterSheetShort = 16.0
	quarterSheetLong  = 20.0
	halfSheetShort    = 20.0
	halfSheetLong     = 32.0
	fullSheetShort    = 32.0
	fullSheetLong     = 40.0
)

// Configuration pricing defaults.
const (
	DefaultMatPricePerInch = 0.1
	BottomWeightedExtra    = 0.5
	DefaultGlassTypeID     = "standard"
	nonGlareMarker         = "non-glare"
)

// Error and log messages
const (
	ErrMsgFrameStyleNotFound = "Frame style not found: %s"
	ErrMsgMatColorNotFound   = "Mat color not found: %s"
	ErrMsgGlassTypeNotFound  = "Glass type not found: %s"
	ErrMsgInvalidDimensions  = "dimensions must be positive"
	ErrMsgUnknownSpecialty   = "no pricer registered for specialty %q"

	LogMsgSpecialtyFallback = "Specialty base pricing failed, using fallback estimate"
	LogMsgQuoteCalculated   = "Quote calculated"
)
