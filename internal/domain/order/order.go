package order

import (
	"strings"
	"time"

	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Line is a historical snapshot of one cart line at the moment of
// purchase. Name, unit price and line total are frozen here and never
// recomputed, even if the catalog product changes later.
type Line struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
}

// NewLine creates a new order line snapshot
func NewLine(orderID, productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Line{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the record created when a checkout completes. Customer
// contact and shipping fields are denormalized onto the order; the
// total is taken as provided by the checkout, not recomputed from
// current product prices.
type Order struct {
	shared.BaseEntity
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	Address       string
	City          string
	State         string
	ZipCode       string
	Notes         string
	Total         decimal.Decimal
	Status        Status
	Lines         []Line
}

// NewOrder creates a new pending order with no lines
func NewOrder(email, fullName, phone, address, city, state, zipCode, notes string, total decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Customer email cannot be empty")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Customer name cannot be empty")
	}
	if strings.TrimSpace(address) == "" || strings.TrimSpace(city) == "" ||
		strings.TrimSpace(state) == "" || strings.TrimSpace(zipCode) == "" {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping address is incomplete")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	return &Order{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerEmail: email,
		CustomerName:  fullName,
		CustomerPhone: phone,
		Address:       address,
		City:          city,
		State:         state,
		ZipCode:       zipCode,
		Notes:         notes,
		Total:         total,
		Status:        StatusPending,
		Lines:         make([]Line, 0),
	}, nil
}

// AddLine snapshots one purchased line onto the order.
// At most one line per product ID is allowed.
func (o *Order) AddLine(productID uuid.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*Line, error) {
	for _, l := range o.Lines {
		if l.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already present on order")
		}
	}

	line, err := NewLine(o.ID, productID, productName, unitPrice, quantity)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	return line, nil
}

// LineCount returns the number of lines on the order
func (o *Order) LineCount() int {
	return len(o.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// LinesTotal returns the sum of all line totals. Kept separate from
// Total, which is the amount the customer saw at checkout.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
