package catalog

import (
	"strings"
	"time"

	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/farmstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Category represents the fixed product category enumeration
type Category string

const (
	CategoryPoultry Category = "poultry"
	CategoryEggs    Category = "eggs"
	CategoryProduce Category = "produce"
)

// IsValid checks if the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryPoultry, CategoryEggs, CategoryProduce:
		return true
	}
	return false
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Categories returns all known categories in display order
func Categories() []Category {
	return []Category{CategoryPoultry, CategoryEggs, CategoryProduce}
}

// Product represents a farm product in the catalog.
// The cart and checkout core treats products as read-only; pricing
// changes here never retroactively alter placed orders.
type Product struct {
	shared.BaseEntity
	Name      string
	UnitPrice decimal.Decimal
	UnitLabel string // e.g. "per kg", "per dozen"
	Category  Category
	Available bool
	Emoji     string // display metadata, no business meaning
	Badge     string // display metadata, no business meaning
}

// NewProduct creates a new product
func NewProduct(name string, unitPrice valueobject.Money, unitLabel string, category Category) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if strings.TrimSpace(unitLabel) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit label cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		UnitPrice:  unitPrice.Amount(),
		UnitLabel:  unitLabel,
		Category:   category,
		Available:  true,
	}, nil
}

// SetDisplay sets the presentational emoji and badge
func (p *Product) SetDisplay(emoji, badge string) {
	p.Emoji = emoji
	p.Badge = badge
	p.UpdatedAt = time.Now()
}

// UpdatePrice updates the unit price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// MarkAvailable marks the product as purchasable
func (p *Product) MarkAvailable() {
	p.Available = true
	p.UpdatedAt = time.Now()
}

// MarkUnavailable marks the product as not purchasable
func (p *Product) MarkUnavailable() {
	p.Available = false
	p.UpdatedAt = time.Now()
}

// UnitPriceMoney returns the unit price as a Money value object
func (p *Product) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}
