package handler

import (
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler serves operational endpoints
type SystemHandler struct {
	BaseHandler
	db Pinger // nil when no store is configured
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service liveness. The store status is informational;
// the storefront keeps serving through the built-in catalog when the
// store is down, so a degraded store does not fail the health check.
func (h *SystemHandler) Health(c *gin.Context) {
	store := "not_configured"
	if h.db != nil {
		store = "ok"
		if err := h.db.Ping(); err != nil {
			store = "unreachable"
		}
	}

	h.Success(c, gin.H{
		"status": "ok",
		"store":  store,
	})
}
