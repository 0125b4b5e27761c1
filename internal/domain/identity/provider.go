package identity

import "context"

// User is the minimal identity the checkout flow cares about
type User struct {
	Email    string
	FullName string
}

// Provider is the auth collaborator. It reports the signed-in user
// for a session, or nil for anonymous visitors. Checkout uses it only
// to pre-fill contact fields; it is never a validation bypass.
type Provider interface {
	CurrentUser(ctx context.Context, sessionID string) *User
}
