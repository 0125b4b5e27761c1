package identity

import (
	"context"

	"github.com/farmstore/backend/internal/domain/identity"
)

// Anonymous is a Provider that knows no users
type Anonymous struct{}

// CurrentUser always returns nil
func (Anonymous) CurrentUser(ctx context.Context, sessionID string) *identity.User {
	return nil
}

// Static is a Provider that reports the same user for every session.
// Used in development when no auth service is wired up.
type Static struct {
	User identity.User
}

// CurrentUser returns the configured user
func (s Static) CurrentUser(ctx context.Context, sessionID string) *identity.User {
	u := s.User
	return &u
}
