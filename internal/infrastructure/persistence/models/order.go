package models

import (
	"time"

	"github.com/farmstore/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	CustomerEmail string           `gorm:"type:varchar(200);not null"`
	CustomerName  string           `gorm:"type:varchar(200);not null"`
	CustomerPhone string           `gorm:"type:varchar(50)"`
	Address       string           `gorm:"type:varchar(500);not null"`
	City          string           `gorm:"type:varchar(100);not null"`
	State         string           `gorm:"type:varchar(100);not null"`
	ZipCode       string           `gorm:"type:varchar(20);not null"`
	Notes         string           `gorm:"type:text"`
	Total         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Status        order.Status     `gorm:"type:varchar(20);not null;default:'pending'"`
	Lines         []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel is the persistence model for an order line snapshot.
type OrderLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Quantity    int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	lines := make([]order.Line, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, order.Line{
			ID:          l.ID,
			OrderID:     l.OrderID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
			CreatedAt:   l.CreatedAt,
		})
	}
	return &order.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		CustomerEmail: m.CustomerEmail,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Address:       m.Address,
		City:          m.City,
		State:         m.State,
		ZipCode:       m.ZipCode,
		Notes:         m.Notes,
		Total:         m.Total,
		Status:        m.Status,
		Lines:         lines,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CustomerEmail = o.CustomerEmail
	m.CustomerName = o.CustomerName
	m.CustomerPhone = o.CustomerPhone
	m.Address = o.Address
	m.City = o.City
	m.State = o.State
	m.ZipCode = o.ZipCode
	m.Notes = o.Notes
	m.Total = o.Total
	m.Status = o.Status

	m.Lines = make([]OrderLineModel, 0, len(o.Lines))
	for _, l := range o.Lines {
		m.Lines = append(m.Lines, OrderLineModel{
			ID:          l.ID,
			OrderID:     l.OrderID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
			CreatedAt:   l.CreatedAt,
		})
	}
}
