package pricing

// SheetFraction returns the share of a 32x40 sheet a mat of w x h inches
// consumes: a quarter up to 16x20, a half up to 20x32 and a full sheet up to
// 32x40. Orientation does not matter. ok is false for oversize mats, which
// need a full 40x60 sheet.
func SheetFraction(w, h float64) (fraction float64, ok bool) {
	short, long := w, h
	if short > long {
		short, long = long, short
	}
	switch {
	case short > fullSheetShort || long > fullSheetLong:
		return 0, false
	case short <= quarterSheetShort && long <= quarterSheetLong:
		return 0.25, true
	case short <= halfSheetShort && long <= halfSheetLong:
		return 0.5, true
	default:
		return 1.0, true
	}
}

// MatCost is the wholesale sheet cost of a w x h mat in the named color.
func MatCost(w, h float64, colorName string) (float64, bool) {
	sheet, ok := matSheetPrices[colorName]
	if !ok {
		return 0, false
	}
	if fraction, ok := SheetFraction(w, h); ok {
		return sheet.price32x40 * fraction, true
	}
	if sheet.price40x60 == 0 {
		return 0, false
	}
	return sheet.price40x60, true
}

// MatPriceForDesigner is the retail price of one mat layer in a frame.
func MatPriceForDesigner(w, h float64, colorName string) (float64, bool) {
	cost, ok := MatCost(w, h, colorName)
	if !ok {
		return 0, false
	}
	return cost * MarkupMatInFrameDesigner, true
}
