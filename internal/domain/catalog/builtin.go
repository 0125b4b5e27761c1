package catalog

import (
	"time"

	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// builtinEpoch is the fixed timestamp stamped on built-in catalog entries
var builtinEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type builtinEntry struct {
	id        string
	name      string
	price     string
	unitLabel string
	category  Category
	emoji     string
	badge     string
}

// Built-in product IDs are fixed so carts persisted against the fallback
// catalog rehydrate to the same lines across restarts.
var builtinEntries = []builtinEntry{
	{"a1a40c51-0001-4c10-9d6e-09f4a3d6a001", "Whole Chicken", "12.99", "per kg", CategoryPoultry, "🍗", "Pasture Raised"},
	{"a1a40c51-0002-4c10-9d6e-09f4a3d6a002", "Chicken Drumsticks", "8.49", "per kg", CategoryPoultry, "🍗", ""},
	{"a1a40c51-0003-4c10-9d6e-09f4a3d6a003", "Chicken Breast", "15.99", "per kg", CategoryPoultry, "🍗", "Lean"},
	{"a1a40c51-0004-4c10-9d6e-09f4a3d6a004", "Free-Range Eggs", "6.50", "per dozen", CategoryEggs, "🥚", "Free Range"},
	{"a1a40c51-0005-4c10-9d6e-09f4a3d6a005", "Duck Eggs", "9.00", "per half dozen", CategoryEggs, "🥚", ""},
	{"a1a40c51-0006-4c10-9d6e-09f4a3d6a006", "Quail Eggs", "7.25", "per tray", CategoryEggs, "🥚", "Delicacy"},
	{"a1a40c51-0007-4c10-9d6e-09f4a3d6a007", "Heirloom Tomatoes", "4.99", "per kg", CategoryProduce, "🍅", "Seasonal"},
	{"a1a40c51-0008-4c10-9d6e-09f4a3d6a008", "Butternut Squash", "3.25", "per piece", CategoryProduce, "🎃", ""},
	{"a1a40c51-0009-4c10-9d6e-09f4a3d6a009", "Rainbow Carrots", "2.99", "per bunch", CategoryProduce, "🥕", ""},
	{"a1a40c51-0010-4c10-9d6e-09f4a3d6a010", "Leafy Greens Mix", "5.49", "per bag", CategoryProduce, "🥬", "Fresh Cut"},
}

// BuiltinCatalog returns the static fallback catalog used when the
// product store is unreachable or unconfigured.
func BuiltinCatalog() []Product {
	products := make([]Product, 0, len(builtinEntries))
	for _, e := range builtinEntries {
		price, _ := decimal.NewFromString(e.price)
		products = append(products, Product{
			BaseEntity: shared.BaseEntity{
				ID:        uuid.MustParse(e.id),
				CreatedAt: builtinEpoch,
				UpdatedAt: builtinEpoch,
			},
			Name:      e.name,
			UnitPrice: price,
			UnitLabel: e.unitLabel,
			Category:  e.category,
			Available: true,
			Emoji:     e.emoji,
			Badge:     e.badge,
		})
	}
	return products
}

// BuiltinCatalogByCategory returns the fallback catalog filtered by category.
// An empty category returns the full catalog.
func BuiltinCatalogByCategory(category Category) []Product {
	all := BuiltinCatalog()
	if category == "" {
		return all
	}
	filtered := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
