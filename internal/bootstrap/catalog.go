package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/FrameCraft_Go/internal/config"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
	"github.com/osse101/FrameCraft_Go/internal/shopify"
	"github.com/osse101/FrameCraft_Go/internal/validation"
)

// LoadPricingCatalog reads and schema-checks the catalog files in
// cfg.CatalogDir.
func LoadPricingCatalog(cfg *config.Config, v validation.SchemaValidator) (*pricing.Catalog, error) {
	catalog, err := pricing.LoadCatalog(cfg.CatalogDir, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded,
		"dir", cfg.CatalogDir,
		"frames", len(catalog.FrameStyles()),
		"mats", len(catalog.MatColors()),
		"glass", len(catalog.GlassTypes()))
	return catalog, nil
}

// BuildStoreRegistry registers every configured store. The store named by
// cfg.DefaultStoreID also answers for unknown tenants.
func BuildStoreRegistry(cfg *config.Config) (*shopify.Registry, error) {
	reg := shopify.NewRegistry(shopify.WithDeadline(cfg.ShopifyDeadline))
	for _, sc := range cfg.Stores {
		if err := reg.Register(sc); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterShop, err)
		}
		if sc.StoreID == cfg.DefaultStoreID {
			if err := reg.SetDefault(sc); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterShop, err)
			}
		}
	}
	slog.Info(LogMsgStoresRegistered, "stores", reg.StoreIDs(), "default", cfg.DefaultStoreID)
	return reg, nil
}
