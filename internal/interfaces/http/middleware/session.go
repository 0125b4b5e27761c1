package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader is the header carrying the storefront session ID
const SessionHeader = "X-Session-ID"

// sessionKey is the gin context key holding the session ID
const sessionKey = "session_id"

// SessionID resolves the storefront session for each request. Carts
// and checkout flows are keyed by this ID. A request without a session
// gets a fresh one, echoed back so the client can hold on to it.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
		}
		c.Set(sessionKey, sessionID)
		c.Writer.Header().Set(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID resolved for this request
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
