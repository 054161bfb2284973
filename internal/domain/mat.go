package domain

import "slices"

// MatSheetSize is a stocked mat board sheet size.
type MatSheetSize string

const (
	Sheet32x40 MatSheetSize = "32x40"
	Sheet40x60 MatSheetSize = "40x60"
)

type MatCategory string

const (
	MatCategoryRegular MatCategory = "regular"
	MatCategoryPremium MatCategory = "premium"
)

type MatBrand string

const (
	BrandPeterboro MatBrand = "Peterboro"
	BrandCrescent  MatBrand = "Crescent"
	BrandDecor     MatBrand = "Decor"
)

// MatPricing is the wholesale cost per sheet and the retail markup.
type MatPricing struct {
	CostPer32x40 float64 `json:"costPer32x40,omitempty"`
	CostPer40x60 float64 `json:"costPer40x60,omitempty"`
	Markup       float64 `json:"markup"`
}

// MatShopifyIDs links a mat board to its commerce catalog entries.
type MatShopifyIDs struct {
	ProductID      string `json:"productId,omitempty"`
	VariantID32x40 string `json:"variantId32x40,omitempty"`
	VariantID40x60 string `json:"variantId40x60,omitempty"`
}

// MatBoard is a read-only catalog entry for one mat color.
type MatBoard struct {
	ID              string                  `json:"id"`
	ColorName       string                  `json:"colorName"`
	ColorHex        string                  `json:"colorHex"`
	Brand           MatBrand                `json:"brand"`
	Texture         string                  `json:"texture"`
	Category        MatCategory             `json:"category"`
	SKUs            map[MatSheetSize]string `json:"skus"`
	AvailableSizes  []MatSheetSize          `json:"availableSizes"`
	Pricing         MatPricing              `json:"pricing"`
	TextureImageURL string                  `json:"textureImageUrl,omitempty"`
	Shopify         *MatShopifyIDs          `json:"shopify,omitempty"`
	ExcludedSites   []string                `json:"excludedSites,omitempty"`
}

// AvailableFor reports whether the mat is stocked in the given sheet size.
func (m MatBoard) AvailableFor(size MatSheetSize) bool {
	return slices.Contains(m.AvailableSizes, size)
}

// SKUFor returns the SKU for a sheet size, or "" when not stocked.
func (m MatBoard) SKUFor(size MatSheetSize) string {
	return m.SKUs[size]
}

// MatCatalog is the response document of the remote mat catalog.
type MatCatalog struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Mats        []MatBoard `json:"mats"`
}

// MatFilter narrows a catalog request. Zero fields are not sent.
type MatFilter struct {
	RequiredSize MatSheetSize
	Category     MatCategory
	Brand        MatBrand
	ExcludeSite  string
}

// MatSizeOption is the retail offer for one sheet size.
type MatSizeOption struct {
	SKU    string  `json:"sku"`
	Price  float64 `json:"price"`
	Vendor string  `json:"vendor"`
}

// MatPaletteColor is the designer-facing projection of a MatBoard.
type MatPaletteColor struct {
	ID                  string                          `json:"id"`
	Type                string                          `json:"type"`
	Name                string                          `json:"name"`
	SwatchFile          string                          `json:"swatchFile"`
	HexColor            string                          `json:"hexColor"`
	Sizes               map[MatSheetSize]*MatSizeOption `json:"sizes"`
	IsRegular           bool                            `json:"isRegular"`
	IsPremium           bool                            `json:"isPremium"`
	IsAvailableOversize bool                            `json:"isAvailableOversize"`
}
