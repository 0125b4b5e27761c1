package handler

import (
	cartapp "github.com/farmstore/backend/internal/application/cart"
	catalogapp "github.com/farmstore/backend/internal/application/catalog"
	"github.com/farmstore/backend/internal/interfaces/http/dto"
	"github.com/farmstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler serves the session cart
type CartHandler struct {
	BaseHandler
	carts   *cartapp.Service
	catalog *catalogapp.ProductService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.Service, catalog *catalogapp.ProductService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.PUT("/items/:id", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.POST("/drawer/toggle", h.ToggleDrawer)
		cart.POST("/drawer/open", h.OpenDrawer)
		cart.POST("/drawer/close", h.CloseDrawer)
	}
}

// Get returns the session cart with derived totals
func (h *CartHandler) Get(c *gin.Context) {
	snap := h.carts.Get(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCartResponse(snap))
}

// AddItem adds a product to the cart. Quantities below one are bumped
// to one; adding a product already in the cart merges quantities.
// Adding always opens the drawer.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	snap := h.carts.AddItem(c.Request.Context(), middleware.GetSessionID(c), *product, req.Quantity)
	h.Success(c, toCartResponse(snap))
}

// UpdateQuantity sets the exact quantity of one cart line. A quantity
// of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity payload")
		return
	}

	snap := h.carts.UpdateQuantity(c.Request.Context(), middleware.GetSessionID(c), productID, req.Quantity)
	h.Success(c, toCartResponse(snap))
}

// RemoveItem removes one line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	productID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	snap := h.carts.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), productID)
	h.Success(c, toCartResponse(snap))
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	snap := h.carts.Clear(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCartResponse(snap))
}

// ToggleDrawer flips the drawer open state
func (h *CartHandler) ToggleDrawer(c *gin.Context) {
	snap := h.carts.ToggleDrawer(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCartResponse(snap))
}

// OpenDrawer opens the drawer
func (h *CartHandler) OpenDrawer(c *gin.Context) {
	snap := h.carts.OpenDrawer(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCartResponse(snap))
}

// CloseDrawer closes the drawer
func (h *CartHandler) CloseDrawer(c *gin.Context) {
	snap := h.carts.CloseDrawer(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCartResponse(snap))
}
