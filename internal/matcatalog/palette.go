package matcatalog

import (
	"fmt"

	"github.com/osse101/FrameCraft_Go/internal/domain"
)

// RequiredSheetSize returns the smallest stocked sheet a design of w x h
// inches can be cut from.
func RequiredSheetSize(w, h float64) domain.MatSheetSize {
	if w > MaxStandardSheetWidth || h > MaxStandardSheetHeight {
		return domain.Sheet40x60
	}
	return domain.Sheet32x40
}

// ToPaletteColor projects a catalog board into the designer palette. A size
// is offered only when the board has both a SKU and a cost for it.
func ToPaletteColor(m domain.MatBoard) domain.MatPaletteColor {
	premium := m.Category == domain.MatCategoryPremium
	kind := PaletteRegular
	if premium {
		kind = PalettePremium
	}

	return domain.MatPaletteColor{
		ID:         m.ID,
		Type:       kind,
		Name:       m.ColorName,
		SwatchFile: fmt.Sprintf(swatchPathFormat, m.ID),
		HexColor:   m.ColorHex,
		Sizes: map[domain.MatSheetSize]*domain.MatSizeOption{
			domain.Sheet32x40: sizeOption(m, domain.Sheet32x40, m.Pricing.CostPer32x40),
			domain.Sheet40x60: sizeOption(m, domain.Sheet40x60, m.Pricing.CostPer40x60),
		},
		IsRegular:           !premium,
		IsPremium:           premium,
		IsAvailableOversize: m.AvailableFor(domain.Sheet40x60),
	}
}

func sizeOption(m domain.MatBoard, size domain.MatSheetSize, cost float64) *domain.MatSizeOption {
	sku := m.SKUFor(size)
	if sku == "" || cost == 0 {
		return nil
	}
	return &domain.MatSizeOption{
		SKU:    sku,
		Price:  cost * m.Pricing.Markup,
		Vendor: string(m.Brand),
	}
}

// Palette is a catalog split by category.
type Palette struct {
	SheetSize domain.MatSheetSize      `json:"sheetSize"`
	Standard  []domain.MatPaletteColor `json:"standard"`
	Premium   []domain.MatPaletteColor `json:"premium"`
	All       []domain.MatPaletteColor `json:"all"`
}

func newPalette(size domain.MatSheetSize, mats []domain.MatBoard) *Palette {
	p := &Palette{
		SheetSize: size,
		Standard:  []domain.MatPaletteColor{},
		Premium:   []domain.MatPaletteColor{},
		All:       make([]domain.MatPaletteColor, 0, len(mats)),
	}
	for _, m := range mats {
		c := ToPaletteColor(m)
		p.All = append(p.All, c)
		if c.IsPremium {
			p.Premium = append(p.Premium, c)
		} else {
			p.Standard = append(p.Standard, c)
		}
	}
	return p
}
