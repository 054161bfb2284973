package pricing

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// SpecialtyRequest describes a specialty frame for quoting. Layout holds the
// layout id of the type (comic layout, playbill layout, jersey layout or
// puzzle size). Shadowbox and canvas-float are sized by ArtworkWidth and
// ArtworkHeight instead.
type SpecialtyRequest struct {
	Type            domain.SpecialtyType   `json:"type"`
	Layout          string                 `json:"layout,omitempty"`
	Format          string                 `json:"format,omitempty"`
	FrameStyleID    string                 `json:"frameStyleId,omitempty"`
	GlassTypeID     string                 `json:"glassTypeId,omitempty"`
	MatType         domain.MatType         `json:"matType,omitempty"`
	MatBorderWidth  float64                `json:"matBorderWidth,omitempty"`
	MatColorID      string                 `json:"matColorId,omitempty"`
	MatInnerColorID string                 `json:"matInnerColorId,omitempty"`
	ArtworkWidth    float64                `json:"artworkWidth,omitempty"`
	ArtworkHeight   float64                `json:"artworkHeight,omitempty"`
	Depth           float64                `json:"depth,omitempty"`
	HangingHardware domain.HangingHardware `json:"hangingHardware,omitempty"`
	Nameplate       bool                   `json:"nameplate,omitempty"`
	JerseyMount     bool                   `json:"jerseyMount,omitempty"`
	Accessories     int                    `json:"accessories,omitempty"`
	CanvasStretcher bool                   `json:"canvasStretcher,omitempty"`
}

// SurchargeLine is one applied surcharge.
type SurchargeLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// SpecialtyBreakdown is the quote for a specialty frame. Total always equals
// Subtotal. Estimated is set when the base frame could not be priced and a
// fixed estimate was substituted; such quotes are for preview only.
type SpecialtyBreakdown struct {
	Type           domain.SpecialtyType `json:"type"`
	FramePrice     float64              `json:"framePrice"`
	MatPrice       float64              `json:"matPrice"`
	Surcharges     []SurchargeLine      `json:"surcharges"`
	Subtotal       float64              `json:"subtotal"`
	Total          float64              `json:"total"`
	Estimated      bool                 `json:"estimated"`
	Openings       int                  `json:"openings"`
	InteriorWidth  float64              `json:"interiorWidth"`
	InteriorHeight float64              `json:"interiorHeight"`
}

// SurchargeTotal sums the applied surcharges.
func (b SpecialtyBreakdown) SurchargeTotal() float64 {
	var sum float64
	for _, s := range b.Surcharges {
		sum += s.Amount
	}
	return sum
}

// geometry is what a layout resolves to before pricing.
type geometry struct {
	width, height float64
	openings      int
	graded        bool
	matType       domain.MatType
	matBorder     float64
	matReveal     float64
	matColor      string
	matInnerColor string
	// fallback is the base price used when the engine fails
	fallback float64
}

// surchargeRule adds amount x units; units of zero skip the rule.
type surchargeRule struct {
	name   string
	amount float64
	units  func(SpecialtyRequest, geometry) float64
}

type specialtyPricer struct {
	// resolve returns ok=false while the design is incomplete, which yields
	// an all-zero quote.
	resolve func(SpecialtyRequest, *domain.FrameStyle) (geometry, bool, error)
	rules   []surchargeRule
}

func when(cond func(SpecialtyRequest, geometry) bool) func(SpecialtyRequest, geometry) float64 {
	return func(r SpecialtyRequest, g geometry) float64 {
		if cond(r, g) {
			return 1
		}
		return 0
	}
}

var (
	securityHardware = surchargeRule{"Security hardware", SecurityHardwareUpcharge, when(func(r SpecialtyRequest, _ geometry) bool {
		return r.HangingHardware == domain.HardwareSecurity
	})}
	brassNameplate = surchargeRule{"Brass nameplate", BrassNameplatePrice, when(func(r SpecialtyRequest, _ geometry) bool {
		return r.Nameplate
	})}
	// playbill nameplates mount on the mat
	mattedNameplate = surchargeRule{"Brass nameplate", BrassNameplatePrice, when(func(r SpecialtyRequest, g geometry) bool {
		return r.Nameplate && g.matType != domain.MatNone
	})}
)

var specialtyPricers = map[domain.SpecialtyType]specialtyPricer{
	domain.SpecialtyComicBook: {
		resolve: resolveComic,
		rules: []surchargeRule{
			{"Mat openings", MatSurchargePerOpening, func(r SpecialtyRequest, g geometry) float64 {
				if !hasMat(r.MatType) || g.openings < 2 {
					return 0
				}
				return float64(g.openings - 1)
			}},
			{"Slab depth", SlabDepthModifier, when(func(_ SpecialtyRequest, g geometry) bool { return g.graded })},
			securityHardware,
			brassNameplate,
		},
	},
	domain.SpecialtyPlaybill: {
		resolve: resolvePlaybill,
		rules:   []surchargeRule{securityHardware, mattedNameplate},
	},
	domain.SpecialtyJersey: {
		resolve: resolveTable(func(r SpecialtyRequest) (dims, int, bool) {
			d, ok := jerseyLayouts[r.Layout]
			return d, 1, ok
		}, JerseyFallbackPrice),
		rules: []surchargeRule{securityHardware, brassNameplate},
	},
	domain.SpecialtyPuzzle: {
		resolve: resolveTable(func(r SpecialtyRequest) (dims, int, bool) {
			p, ok := puzzleSizes[r.Layout]
			return p.size, 1, ok
		}, PuzzleFallbackPrice),
		rules: []surchargeRule{securityHardware, brassNameplate},
	},
	domain.SpecialtyShadowbox: {
		resolve: resolveFreeSize(ShadowboxFallbackPrice),
		rules: []surchargeRule{
			{"Deep profile", ShadowboxDeepSurcharge, when(func(r SpecialtyRequest, _ geometry) bool {
				return r.Depth > ShadowboxDeepThreshold && r.Depth <= ShadowboxExtraDeepThreshold
			})},
			{"Extra deep profile", ShadowboxExtraDeepSurcharge, when(func(r SpecialtyRequest, _ geometry) bool {
				return r.Depth > ShadowboxExtraDeepThreshold
			})},
			{"Jersey mount", ShadowboxJerseyMountPrice, when(func(r SpecialtyRequest, _ geometry) bool { return r.JerseyMount })},
			{"Accessories", ShadowboxAccessoryPrice, func(r SpecialtyRequest, _ geometry) float64 {
				return float64(max(r.Accessories, 0))
			}},
			securityHardware,
			brassNameplate,
		},
	},
	domain.SpecialtyCanvasFloat: {
		resolve: resolveFreeSize(CanvasFloatFallbackPrice),
		rules: []surchargeRule{
			{"Deep float", CanvasDeepFloatSurcharge, when(func(r SpecialtyRequest, _ geometry) bool {
				return r.Depth > CanvasDeepFloatThreshold
			})},
			{"Canvas stretcher", CanvasStretcherPrice, when(func(r SpecialtyRequest, _ geometry) bool { return r.CanvasStretcher })},
			securityHardware,
		},
	},
}

// SpecialtyQuote prices a specialty frame: resolve the layout geometry, price
// the base frame with the general engine, then apply the type's surcharges.
// An incomplete design (no layout or size) yields an all-zero quote. A base
// pricing failure is not an error: the type's fixed estimate is used and the
// quote is marked Estimated.
func (c *Calculator) SpecialtyQuote(ctx context.Context, req SpecialtyRequest) (*SpecialtyBreakdown, error) {
	pricer, ok := specialtyPricers[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: "+ErrMsgUnknownSpecialty, domain.ErrInvalidSpecialty, req.Type)
	}

	out := &SpecialtyBreakdown{Type: req.Type, Surcharges: []SurchargeLine{}}

	var frame *domain.FrameStyle
	if f, found := c.catalog.FrameStyle(req.FrameStyleID); found {
		frame = &f
	}

	geo, ready, err := pricer.resolve(req, frame)
	if err != nil {
		return nil, err
	}
	if !ready {
		return out, nil
	}
	out.Openings = geo.openings
	out.InteriorWidth = geo.width
	out.InteriorHeight = geo.height

	if req.FrameStyleID != "" {
		base, err := c.Calculate(c.baseConfiguration(req, geo))
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSpecialtyFallback,
				"specialty", req.Type, "layout", req.Layout, "fallback", geo.fallback, "error", err)
			out.FramePrice = geo.fallback
			out.Estimated = true
		} else {
			out.FramePrice = base.FramePrice + base.GlassPrice
			out.MatPrice = base.MatPrice
		}
	}

	for _, rule := range pricer.rules {
		if units := rule.units(req, geo); units > 0 {
			out.Surcharges = append(out.Surcharges, SurchargeLine{Name: rule.name, Amount: rule.amount * units})
		}
	}

	out.Subtotal = out.FramePrice + out.MatPrice + out.SurchargeTotal()
	out.Total = out.Subtotal
	return out, nil
}

func (c *Calculator) baseConfiguration(req SpecialtyRequest, geo geometry) domain.FrameConfiguration {
	glass := req.GlassTypeID
	if glass == "" {
		glass = DefaultGlassTypeID
	}
	cfg := domain.FrameConfiguration{
		ServiceType:   domain.ServiceFrameOnly,
		ArtworkWidth:  geo.width,
		ArtworkHeight: geo.height,
		FrameStyleID:  req.FrameStyleID,
		MatType:       domain.MatNone,
		GlassTypeID:   glass,
	}
	if hasMat(geo.matType) {
		cfg.MatType = geo.matType
		cfg.MatBorderWidth = geo.matBorder
		cfg.MatColorID = geo.matColor
		if geo.matType == domain.MatDouble {
			cfg.MatRevealWidth = geo.matReveal
			cfg.MatInnerColorID = geo.matInnerColor
		}
	}
	return cfg
}

func resolveComic(req SpecialtyRequest, _ *domain.FrameStyle) (geometry, bool, error) {
	if req.Layout == "" {
		return geometry{}, false, nil
	}
	layout, ok := comicLayouts[req.Layout]
	if !ok {
		return geometry{}, false, fmt.Errorf("%w: comic layout %q", domain.ErrLayoutNotFound, req.Layout)
	}
	format, ok := comicFormats[req.Format]
	if !ok {
		// format not chosen yet
		return geometry{}, false, nil
	}
	rabbet := layout.ng
	if format.slabbed {
		rabbet = layout.gr
	}
	// mats are charged per opening, not through the engine
	return geometry{
		width:    rabbet.Width,
		height:   rabbet.Height,
		openings: layout.count,
		graded:   format.slabbed,
		matType:  domain.MatNone,
		fallback: ComicFallbackPrice,
	}, true, nil
}

func resolvePlaybill(req SpecialtyRequest, frame *domain.FrameStyle) (geometry, bool, error) {
	if req.Layout == "" || frame == nil {
		return geometry{}, false, nil
	}
	layout, ok := playbillLayouts[req.Layout]
	if !ok {
		return geometry{}, false, fmt.Errorf("%w: playbill layout %q", domain.ErrLayoutNotFound, req.Layout)
	}

	moulding := frame.MouldingWidth
	if moulding <= 0 {
		moulding = DefaultFrameMouldingWidth
	}
	ppi := frame.PricePerInch
	if ppi <= 0 {
		ppi = PlaybillFallbackPricePerInch
	}

	g := geometry{
		width:    layout.outer.Width - 2*moulding,
		height:   layout.outer.Height - 2*moulding,
		openings: layout.openings,
		matType:  normalizeMat(req.MatType),
		fallback: 2 * (layout.outer.Width + layout.outer.Height) * ppi,
	}
	applyMat(&g, req, PlaybillMatBorder)
	if g.matType == domain.MatDouble {
		g.matReveal = PlaybillMatReveal
	}
	return g, true, nil
}

// resolveTable handles types whose layout id maps straight to rabbet dims.
func resolveTable(lookup func(SpecialtyRequest) (dims, int, bool), fallback float64) func(SpecialtyRequest, *domain.FrameStyle) (geometry, bool, error) {
	return func(req SpecialtyRequest, _ *domain.FrameStyle) (geometry, bool, error) {
		if req.Layout == "" {
			return geometry{}, false, nil
		}
		d, openings, ok := lookup(req)
		if !ok {
			return geometry{}, false, fmt.Errorf("%w: %s layout %q", domain.ErrLayoutNotFound, req.Type, req.Layout)
		}
		g := geometry{
			width:    d.Width,
			height:   d.Height,
			openings: openings,
			matType:  normalizeMat(req.MatType),
			fallback: fallback,
		}
		applyMat(&g, req, PlaybillMatBorder)
		return g, true, nil
	}
}

// resolveFreeSize handles types sized by the customer's artwork.
func resolveFreeSize(fallback float64) func(SpecialtyRequest, *domain.FrameStyle) (geometry, bool, error) {
	return func(req SpecialtyRequest, _ *domain.FrameStyle) (geometry, bool, error) {
		if req.ArtworkWidth <= 0 || req.ArtworkHeight <= 0 {
			return geometry{}, false, nil
		}
		g := geometry{
			width:    req.ArtworkWidth,
			height:   req.ArtworkHeight,
			openings: 1,
			matType:  normalizeMat(req.MatType),
			fallback: fallback,
		}
		applyMat(&g, req, PlaybillMatBorder)
		return g, true, nil
	}
}

// applyMat copies the requested mat onto g, defaulting the border width.
func applyMat(g *geometry, req SpecialtyRequest, defaultBorder float64) {
	if !hasMat(g.matType) {
		return
	}
	g.matBorder = req.MatBorderWidth
	if g.matBorder <= 0 {
		g.matBorder = defaultBorder
	}
	g.matColor = req.MatColorID
	g.matInnerColor = req.MatInnerColorID
}

func normalizeMat(t domain.MatType) domain.MatType {
	if t == "" {
		return domain.MatNone
	}
	return t
}

func hasMat(t domain.MatType) bool {
	return t != "" && t != domain.MatNone
}

// SpecialtyRequestFor builds a quote request from a stored configuration.
func SpecialtyRequestFor(cfg domain.FrameConfiguration, s *domain.SpecialtyConfig) SpecialtyRequest {
	req := SpecialtyRequest{
		FrameStyleID:    cfg.FrameStyleID,
		GlassTypeID:     cfg.GlassTypeID,
		MatType:         cfg.MatType,
		MatBorderWidth:  cfg.MatBorderWidth,
		MatColorID:      cfg.MatColorID,
		MatInnerColorID: cfg.MatInnerColorID,
		ArtworkWidth:    cfg.ArtworkWidth,
		ArtworkHeight:   cfg.ArtworkHeight,
	}
	if s == nil {
		return req
	}
	req.Type = s.Type
	switch s.Type {
	case domain.SpecialtyShadowbox:
		req.Depth = s.Shadowbox.Depth
		req.HangingHardware = s.Shadowbox.HangingHardware
		req.JerseyMount = s.Shadowbox.JerseyMount
		req.Accessories = len(s.Shadowbox.Accessories)
	case domain.SpecialtyJersey:
		req.Layout = s.Jersey.JerseySize
	case domain.SpecialtyCanvasFloat:
		req.Depth = s.CanvasFloat.FloatDepth
		req.CanvasStretcher = s.CanvasFloat.CanvasStretcher
	case domain.SpecialtyPuzzle:
		req.Layout = s.Puzzle.PuzzleSize
	case domain.SpecialtyComicBook:
		req.Layout = s.ComicBook.ComicLayout
		req.Format = s.ComicBook.ComicFormat
	case domain.SpecialtyPlaybill:
		req.Layout = s.Playbill.LayoutType
	}
	return req
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
