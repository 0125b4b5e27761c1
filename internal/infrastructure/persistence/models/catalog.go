package models

import (
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name      string           `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	UnitLabel string           `gorm:"type:varchar(50);not null"`
	Category  catalog.Category `gorm:"type:varchar(20);not null;index"`
	Available bool             `gorm:"not null;default:true"`
	Emoji     string           `gorm:"type:varchar(20)"`
	Badge     string           `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		UnitPrice:  m.UnitPrice,
		UnitLabel:  m.UnitLabel,
		Category:   m.Category,
		Available:  m.Available,
		Emoji:      m.Emoji,
		Badge:      m.Badge,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.UnitPrice = p.UnitPrice
	m.UnitLabel = p.UnitLabel
	m.Category = p.Category
	m.Available = p.Available
	m.Emoji = p.Emoji
	m.Badge = p.Badge
}
