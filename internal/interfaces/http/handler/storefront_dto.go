package handler

import (
	"time"

	cartapp "github.com/farmstore/backend/internal/application/cart"
	checkoutapp "github.com/farmstore/backend/internal/application/checkout"
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResponse is the wire representation of a catalog product
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitLabel string          `json:"unit_label"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
	Emoji     string          `json:"emoji,omitempty"`
	Badge     string          `json:"badge,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		UnitLabel: p.UnitLabel,
		Category:  p.Category.String(),
		Available: p.Available,
		Emoji:     p.Emoji,
		Badge:     p.Badge,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

// CartLineResponse is one cart line with its derived total
type CartLineResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse is the wire representation of a session cart
type CartResponse struct {
	Lines      []CartLineResponse `json:"lines"`
	DrawerOpen bool               `json:"drawer_open"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

func toCartResponse(snap cartapp.Snapshot) CartResponse {
	lines := make([]CartLineResponse, 0, len(snap.Lines))
	for i := range snap.Lines {
		line := snap.Lines[i]
		lines = append(lines, CartLineResponse{
			Product:   toProductResponse(&line.Product),
			Quantity:  line.Quantity,
			LineTotal: line.Total(),
		})
	}
	return CartResponse{
		Lines:      lines,
		DrawerOpen: snap.DrawerOpen,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice,
	}
}

// CheckoutFormResponse mirrors the entered checkout form fields
type CheckoutFormResponse struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	OrderNotes string `json:"order_notes"`
}

// CheckoutStateResponse is the wire representation of a checkout flow
type CheckoutStateResponse struct {
	Step       string               `json:"step"`
	Form       CheckoutFormResponse `json:"form"`
	Submitting bool                 `json:"submitting"`
	Error      *string              `json:"error"`
	OrderID    *uuid.UUID           `json:"order_id"`
}

func toCheckoutStateResponse(state checkoutapp.State) CheckoutStateResponse {
	var errMsg *string
	if state.Error != "" {
		msg := state.Error
		errMsg = &msg
	}
	return CheckoutStateResponse{
		Step: state.Step.String(),
		Form: CheckoutFormResponse{
			Email:      state.Form.Email,
			FullName:   state.Form.FullName,
			Phone:      state.Form.Phone,
			Address:    state.Form.Address,
			City:       state.Form.City,
			State:      state.Form.State,
			ZipCode:    state.Form.ZipCode,
			OrderNotes: state.Form.OrderNotes,
		},
		Submitting: state.Submitting,
		Error:      errMsg,
		OrderID:    state.OrderID,
	}
}

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest sets the exact quantity of a cart line.
// Zero and negative quantities are valid and remove the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutFormRequest carries a partial checkout form update.
// Absent fields are left untouched.
type CheckoutFormRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	ZipCode    *string `json:"zip_code"`
	OrderNotes *string `json:"order_notes"`
}
