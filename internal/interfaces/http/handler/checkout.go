package handler

import (
	checkoutapp "github.com/farmstore/backend/internal/application/checkout"
	"github.com/farmstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler walks the session through the checkout flow
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.GET("", h.State)
		checkout.DELETE("", h.Close)
		checkout.PATCH("/form", h.UpdateForm)
		checkout.POST("/advance", h.Advance)
		checkout.POST("/back", h.Back)
		checkout.POST("/submit", h.Submit)
	}
}

// State returns the current checkout flow state, opening a flow at the
// contact step when the session has none.
func (h *CheckoutHandler) State(c *gin.Context) {
	state := h.checkout.Open(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCheckoutStateResponse(state))
}

// UpdateForm applies a partial form update
func (h *CheckoutHandler) UpdateForm(c *gin.Context) {
	var req CheckoutFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	state, err := h.checkout.UpdateForm(c.Request.Context(), middleware.GetSessionID(c), checkoutapp.FormPatch{
		Email:      req.Email,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		OrderNotes: req.OrderNotes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCheckoutStateResponse(state))
}

// Advance moves to the next step when the current step's fields are
// complete. An incomplete step is not an error; the response simply
// shows the unchanged step.
func (h *CheckoutHandler) Advance(c *gin.Context) {
	state := h.checkout.Advance(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCheckoutStateResponse(state))
}

// Back moves to the previous step where allowed
func (h *CheckoutHandler) Back(c *gin.Context) {
	state := h.checkout.Back(c.Request.Context(), middleware.GetSessionID(c))
	h.Success(c, toCheckoutStateResponse(state))
}

// Submit places the order for the reviewed cart
func (h *CheckoutHandler) Submit(c *gin.Context) {
	state, err := h.checkout.Submit(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, toCheckoutStateResponse(state))
}

// Close discards the checkout flow for this session
func (h *CheckoutHandler) Close(c *gin.Context) {
	h.checkout.Close(c.Request.Context(), middleware.GetSessionID(c))
	h.NoContent(c)
}
