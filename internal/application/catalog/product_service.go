package catalog

import (
	"context"

	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService reads the product catalog. When the backing store is
// unreachable or not configured at all, listings degrade to the
// built-in catalog instead of surfacing an error.
type ProductService struct {
	repo   catalog.ProductRepository // nil when no store is configured
	logger *zap.Logger
}

// NewProductService creates a new ProductService. A nil repository is
// valid and serves the built-in catalog exclusively.
func NewProductService(repo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// List returns products, optionally filtered by category. Store
// failures fall back to the built-in catalog and are never surfaced
// to the caller.
func (s *ProductService) List(ctx context.Context, category catalog.Category, includeUnavailable bool) ([]catalog.Product, error) {
	if category != "" && !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}

	if s.repo == nil {
		return catalog.BuiltinCatalogByCategory(category), nil
	}

	var (
		products []catalog.Product
		err      error
	)
	if category == "" {
		products, err = s.repo.FindAll(ctx, includeUnavailable)
	} else {
		products, err = s.repo.FindByCategory(ctx, category, includeUnavailable)
	}
	if err != nil {
		s.logger.Warn("product store unavailable, serving built-in catalog",
			zap.String("category", category.String()),
			zap.Error(err),
		)
		return catalog.BuiltinCatalogByCategory(category), nil
	}

	return products, nil
}

// Get returns a single product by ID, consulting the built-in catalog
// when the store fails or the product is unknown to it.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if s.repo != nil {
		product, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return product, nil
		}
		if err != shared.ErrNotFound {
			s.logger.Warn("product store unavailable, consulting built-in catalog",
				zap.String("product_id", id.String()),
				zap.Error(err),
			)
		}
	}

	for _, p := range catalog.BuiltinCatalog() {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, shared.ErrNotFound
}
