package order

import (
	"context"
	"time"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/checkout"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultSimulatedDelay approximates a round trip to a real backend
const DefaultSimulatedDelay = 1500 * time.Millisecond

// SimulatedSubmitter stands in for the order store when none is
// configured, so the full checkout flow is exercisable offline. It
// applies the same input validation and produces the same state
// transitions as the real path, differing only in the backend call.
type SimulatedSubmitter struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewSimulatedSubmitter creates a new SimulatedSubmitter.
// A non-positive delay falls back to DefaultSimulatedDelay.
func NewSimulatedSubmitter(delay time.Duration, logger *zap.Logger) *SimulatedSubmitter {
	if delay <= 0 {
		delay = DefaultSimulatedDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedSubmitter{
		delay:  delay,
		logger: logger,
	}
}

// Submit validates the inputs, waits the artificial delay, and
// returns a synthesized order ID.
func (s *SimulatedSubmitter) Submit(ctx context.Context, form checkout.FormData, lines []cart.Line, total decimal.Decimal) (uuid.UUID, error) {
	// Same aggregate construction as the real path so validation
	// behavior is identical.
	o, err := buildOrder(form, lines, total)
	if err != nil {
		return uuid.Nil, err
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}

	s.logger.Info("order simulated (no order store configured)",
		zap.String("order_id", o.ID.String()),
		zap.Int("lines", o.LineCount()),
		zap.String("total", total.StringFixed(2)),
	)
	return o.ID, nil
}
