package matcatalog

import (
	"errors"
	"time"
)

// Sheet thresholds. Designs wider than 32" or taller than 40" need a 40x60 sheet.
const (
	MaxStandardSheetWidth  = 32.0
	MaxStandardSheetHeight = 40.0
)

const (
	DefaultCatalogPath = "/api/mats"
	DefaultTimeout     = 10 * time.Second
	DefaultCacheSize   = 64
	DefaultCacheTTL    = 5 * time.Minute
)

// Palette type labels.
const (
	PaletteRegular = "Regular"
	PalettePremium = "Premium"
)

// swatchPathFormat is relative to the shared asset host.
const swatchPathFormat = "mats/%s/swatch.jpg"

// Query parameter names.
const (
	paramRequiredSize = "requiredSize"
	paramCategory     = "category"
	paramBrand        = "brand"
	paramExcludeSite  = "excludeSite"
)

// Log messages
const (
	LogMsgCatalogFetched = "Mat catalog fetched"
	LogMsgCatalogCached  = "Mat catalog served from cache"
)

// Error messages
const (
	ErrMsgFetchFailed = "mat catalog fetch failed"
	ErrMsgBadStatus   = "unexpected status %d %s"
)

// ErrFetchFailed wraps every catalog request failure.
var ErrFetchFailed = errors.New(ErrMsgFetchFailed)
