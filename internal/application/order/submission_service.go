package order

import (
	"context"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/checkout"
	"github.com/farmstore/backend/internal/domain/order"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Submitter performs a single logical order-creation transaction:
// one Order plus one OrderLine per cart line. The total is taken as
// provided by the caller and never recomputed from current prices.
type Submitter interface {
	Submit(ctx context.Context, form checkout.FormData, lines []cart.Line, total decimal.Decimal) (uuid.UUID, error)
}

// PaymentGateway marks the place a payment capture step would go.
// The storefront deliberately has none; orders succeed purely by
// being recorded.
type PaymentGateway interface {
	Authorize(ctx context.Context, total decimal.Decimal) error
}

// NoopGateway is the always-succeeding PaymentGateway
type NoopGateway struct{}

// Authorize always succeeds
func (NoopGateway) Authorize(ctx context.Context, total decimal.Decimal) error {
	return nil
}

// SubmissionService submits orders against the order repository,
// writing the order and all of its lines in one atomic transaction.
type SubmissionService struct {
	repo    order.Repository
	gateway PaymentGateway
	logger  *zap.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(repo order.Repository, gateway PaymentGateway, logger *zap.Logger) *SubmissionService {
	if gateway == nil {
		gateway = NoopGateway{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		repo:    repo,
		gateway: gateway,
		logger:  logger,
	}
}

// Submit creates the order record and its line snapshots.
// The cart must be non-empty; step gating is the caller's concern.
func (s *SubmissionService) Submit(ctx context.Context, form checkout.FormData, lines []cart.Line, total decimal.Decimal) (uuid.UUID, error) {
	o, err := buildOrder(form, lines, total)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.gateway.Authorize(ctx, total); err != nil {
		s.logger.Error("payment authorization failed", zap.Error(err))
		return uuid.Nil, shared.NewDomainError("SUBMISSION_FAILED", "Payment could not be authorized")
	}

	if err := s.repo.CreateWithLines(ctx, o); err != nil {
		s.logger.Error("order submission failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return uuid.Nil, shared.NewDomainError("SUBMISSION_FAILED", "Your order could not be placed. Please try again.")
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int("lines", o.LineCount()),
		zap.String("total", total.StringFixed(2)),
	)
	return o.ID, nil
}

// buildOrder assembles the order aggregate from the checkout form and
// cart lines, snapshotting product name and unit price per line.
func buildOrder(form checkout.FormData, lines []cart.Line, total decimal.Decimal) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}

	o, err := order.NewOrder(
		form.Email, form.FullName, form.Phone,
		form.Address, form.City, form.State, form.ZipCode,
		form.OrderNotes, total,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if _, err := o.AddLine(line.Product.ID, line.Product.Name, line.Product.UnitPrice, line.Quantity); err != nil {
			return nil, err
		}
	}
	return o, nil
}
