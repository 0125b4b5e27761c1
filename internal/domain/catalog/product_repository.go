package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, includeUnavailable bool) ([]Product, error)
	FindByCategory(ctx context.Context, category Category, includeUnavailable bool) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}
