package cart

import (
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line pairs a product snapshot with a quantity.
// Invariant: Quantity is always >= 1; a line that would drop to zero
// is removed from the cart instead of being stored.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Total returns the line total (unit price x quantity)
func (l Line) Total() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the single source of truth for the contents of a shopping
// session. Lines are keyed by product ID: at most one line per product.
// Totals are always derived from the lines, never stored, so they can
// never drift from the line data.
type Cart struct {
	lines      []Line
	drawerOpen bool
}

// New creates an empty cart with the drawer closed
func New() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// AddItem adds quantity of the product to the cart, merging with an
// existing line for the same product ID. Quantities below 1 count as 1.
// Adding always opens the drawer so the change is visible.
func (c *Cart) AddItem(product catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity += quantity
			c.drawerOpen = true
			return
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: quantity})
	c.drawerOpen = true
}

// RemoveItem deletes the line for the given product ID; no-op when absent
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity to exactly quantity (not
// additive). A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties all lines. Drawer state is untouched.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// ToggleDrawer flips the drawer visibility
func (c *Cart) ToggleDrawer() {
	c.drawerOpen = !c.drawerOpen
}

// OpenDrawer opens the drawer
func (c *Cart) OpenDrawer() {
	c.drawerOpen = true
}

// CloseDrawer closes the drawer
func (c *Cart) CloseDrawer() {
	c.drawerOpen = false
}

// DrawerOpen reports the drawer visibility
func (c *Cart) DrawerOpen() bool {
	return c.drawerOpen
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for a product ID, or nil when absent
func (c *Cart) Line(productID uuid.UUID) *Line {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			line := c.lines[i]
			return &line
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems returns the sum of all line quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of all line totals
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// ReplaceLines replaces the cart contents wholesale. Used for one-time
// rehydration from persisted storage. Lines violating the invariants
// (duplicate product IDs, quantities below 1) are dropped rather than
// failing the whole cart.
func (c *Cart) ReplaceLines(lines []Line) {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	clean := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if _, dup := seen[l.Product.ID]; dup {
			continue
		}
		seen[l.Product.ID] = struct{}{}
		clean = append(clean, l)
	}
	c.lines = clean
}
