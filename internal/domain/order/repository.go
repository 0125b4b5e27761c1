package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for orders
type Repository interface {
	// CreateWithLines persists the order and all of its lines in a
	// single atomic transaction. Either everything is written or
	// nothing is; there is no partial-write window.
	CreateWithLines(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
}
