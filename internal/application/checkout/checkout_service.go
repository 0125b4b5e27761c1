package checkout

import (
	"context"
	"errors"
	"sync"

	cartapp "github.com/farmstore/backend/internal/application/cart"
	orderapp "github.com/farmstore/backend/internal/application/order"
	"github.com/farmstore/backend/internal/domain/checkout"
	"github.com/farmstore/backend/internal/domain/identity"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the read view of a checkout flow
type State struct {
	Step       checkout.Step
	Form       checkout.FormData
	Submitting bool
	Error      string // last submission error, empty when none
	OrderID    *uuid.UUID
}

// FormPatch carries partial form updates; nil fields are left untouched
type FormPatch struct {
	Email      *string
	FullName   *string
	Phone      *string
	Address    *string
	City       *string
	State      *string
	ZipCode    *string
	OrderNotes *string
}

// Service walks each session through the fixed checkout sequence
// contact -> shipping -> review -> success, gating forward progress on
// the step guards and orchestrating the final order submission.
type Service struct {
	mu        sync.Mutex
	flows     map[string]*flow
	carts     *cartapp.Service
	submitter orderapp.Submitter
	users     identity.Provider
	logger    *zap.Logger
}

// flow is one session's checkout instance. generation increments when
// the flow is closed so a submission result that lands afterwards is
// recognized as stale and dropped.
type flow struct {
	mu         sync.Mutex
	generation int
	step       checkout.Step
	form       checkout.FormData
	submitting bool
	lastErr    string
	orderID    *uuid.UUID
}

// NewService creates a new checkout Service
func NewService(carts *cartapp.Service, submitter orderapp.Submitter, users identity.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		flows:     make(map[string]*flow),
		carts:     carts,
		submitter: submitter,
		users:     users,
		logger:    logger,
	}
}

// Open returns the session's checkout flow, creating it at the contact
// step when absent. Known users get their contact fields pre-filled;
// the fields stay editable and the guards still apply.
func (s *Service) Open(ctx context.Context, sessionID string) State {
	s.mu.Lock()
	f, ok := s.flows[sessionID]
	if !ok {
		f = &flow{step: checkout.StepContact}
		if s.users != nil {
			if u := s.users.CurrentUser(ctx, sessionID); u != nil {
				f.form.Email = u.Email
				f.form.FullName = u.FullName
			}
		}
		s.flows[sessionID] = f
	}
	s.mu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state()
}

// State returns the current flow state, opening the flow if needed
func (s *Service) State(ctx context.Context, sessionID string) State {
	return s.Open(ctx, sessionID)
}

func (s *Service) get(ctx context.Context, sessionID string) *flow {
	s.Open(ctx, sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flows[sessionID]
}

// UpdateForm applies a partial form update. Updates are rejected while
// a submission is in flight and after the flow has succeeded.
func (s *Service) UpdateForm(ctx context.Context, sessionID string, patch FormPatch) (State, error) {
	f := s.get(ctx, sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return f.state(), shared.ErrSubmissionInFlight
	}
	if f.step.IsTerminal() {
		return f.state(), shared.ErrInvalidState
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&f.form.Email, patch.Email)
	apply(&f.form.FullName, patch.FullName)
	apply(&f.form.Phone, patch.Phone)
	apply(&f.form.Address, patch.Address)
	apply(&f.form.City, patch.City)
	apply(&f.form.State, patch.State)
	apply(&f.form.ZipCode, patch.ZipCode)
	apply(&f.form.OrderNotes, patch.OrderNotes)

	return f.state(), nil
}

// Advance moves forward one step when the current step's guard is
// satisfied. An unsatisfied guard silently leaves the step unchanged:
// that is the contract for incomplete fields, not an error. Review
// only advances through Submit.
func (s *Service) Advance(ctx context.Context, sessionID string) State {
	f := s.get(ctx, sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return f.state()
	}

	next := f.step.Next()
	if next == f.step {
		return f.state()
	}
	if !f.form.StepComplete(f.step) {
		return f.state()
	}
	if f.step.CanTransitionTo(next) {
		f.step = next
	}
	return f.state()
}

// Back moves to the previous step where allowed
func (s *Service) Back(ctx context.Context, sessionID string) State {
	f := s.get(ctx, sessionID)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return f.state()
	}

	prev := f.step.Prev()
	if prev != f.step && f.step.CanTransitionTo(prev) {
		f.step = prev
	}
	return f.state()
}

// Submit performs the order submission for the review step. On
// success the cart is cleared and the flow reaches its terminal
// success step; on failure the flow stays on review with the error
// exposed and the cart untouched, so a retry loses nothing. A second
// Submit while one is pending is rejected.
func (s *Service) Submit(ctx context.Context, sessionID string) (State, error) {
	f := s.get(ctx, sessionID)

	f.mu.Lock()
	if f.step != checkout.StepReview {
		defer f.mu.Unlock()
		return f.state(), shared.ErrInvalidState
	}
	if f.submitting {
		defer f.mu.Unlock()
		return f.state(), shared.ErrSubmissionInFlight
	}

	snapshot := s.carts.Get(ctx, sessionID)
	if len(snapshot.Lines) == 0 {
		defer f.mu.Unlock()
		return f.state(), shared.ErrEmptyCart
	}

	f.submitting = true
	f.lastErr = ""
	generation := f.generation
	form := f.form
	f.mu.Unlock()

	orderID, err := s.submitter.Submit(ctx, form, snapshot.Lines, snapshot.TotalPrice)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generation != generation {
		// Flow was closed while the submission was in flight; the
		// controller state was reset, so the late result is dropped.
		s.logger.Warn("dropping submission result for closed checkout",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return f.state(), nil
	}

	f.submitting = false

	if err != nil {
		f.lastErr = submissionMessage(err)
		s.logger.Warn("order submission failed, staying on review",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return f.state(), err
	}

	f.step = checkout.StepSuccess
	f.orderID = &orderID
	s.carts.Clear(ctx, sessionID)

	s.logger.Info("checkout completed",
		zap.String("session_id", sessionID),
		zap.String("order_id", orderID.String()),
	)
	return f.state(), nil
}

// Close discards the session's checkout flow. Entered form data is
// dropped and the cart is untouched; the next Open starts back at
// contact. A submission still in flight will find the flow gone and
// its result is discarded.
func (s *Service) Close(ctx context.Context, sessionID string) {
	s.mu.Lock()
	f, ok := s.flows[sessionID]
	if ok {
		delete(s.flows, sessionID)
	}
	s.mu.Unlock()

	if ok {
		f.mu.Lock()
		f.generation++
		f.mu.Unlock()
	}
}

func (f *flow) state() State {
	return State{
		Step:       f.step,
		Form:       f.form,
		Submitting: f.submitting,
		Error:      f.lastErr,
		OrderID:    f.orderID,
	}
}

// submissionMessage extracts the user-facing message from a
// submission error.
func submissionMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Your order could not be placed. Please try again."
}
