package cart

import (
	"context"
	"sync"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageFactory yields the persisted slot for a session's cart
type StorageFactory func(sessionID string) cart.Storage

// Snapshot is the read view of a cart handed to callers. Totals are
// computed from the lines at snapshot time.
type Snapshot struct {
	Lines      []cart.Line
	DrawerOpen bool
	TotalItems int
	TotalPrice decimal.Decimal
}

// Service owns one cart per session. All mutations for a session run
// under that session's lock, so rapid-fire additions from different
// entry points are applied strictly in order. Every mutation persists
// the line set to the session's storage slot before returning; a
// persistence failure is logged and the in-memory cart stays
// authoritative for the rest of the session.
type Service struct {
	mu         sync.Mutex
	sessions   map[string]*session
	storageFor StorageFactory
	logger     *zap.Logger
}

type session struct {
	mu       sync.Mutex
	cart     *cart.Cart
	storage  cart.Storage
	hydrated bool
}

// NewService creates a new cart Service
func NewService(storageFor StorageFactory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessions:   make(map[string]*session),
		storageFor: storageFor,
		logger:     logger,
	}
}

// session returns the session entry, creating it on first touch
func (s *Service) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}
	sess := &session{
		cart:    cart.New(),
		storage: s.storageFor(sessionID),
	}
	s.sessions[sessionID] = sess
	return sess
}

// hydrate performs the one-time rehydration from persisted storage.
// Must be called with the session lock held. Corruption or read
// failure degrades to an empty cart.
func (s *Service) hydrate(ctx context.Context, sessionID string, sess *session) {
	if sess.hydrated {
		return
	}
	sess.hydrated = true

	lines, err := sess.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("discarding unreadable persisted cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return
	}
	if lines == nil {
		return
	}
	sess.cart.ReplaceLines(lines)
}

// persist writes the current line set to storage. Must be called with
// the session lock held. Failures never propagate to the mutation.
func (s *Service) persist(ctx context.Context, sessionID string, sess *session) {
	if err := sess.storage.Save(ctx, sess.cart.Lines()); err != nil {
		s.logger.Error("failed to persist cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

func (s *Service) snapshot(sess *session) Snapshot {
	return Snapshot{
		Lines:      sess.cart.Lines(),
		DrawerOpen: sess.cart.DrawerOpen(),
		TotalItems: sess.cart.TotalItems(),
		TotalPrice: sess.cart.TotalPrice(),
	}
}

// Get returns the current cart state for a session
func (s *Service) Get(ctx context.Context, sessionID string) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	return s.snapshot(sess)
}

// AddItem adds quantity of the product to the session's cart
func (s *Service) AddItem(ctx context.Context, sessionID string, product catalog.Product, quantity int) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.AddItem(product, quantity)
	s.persist(ctx, sessionID, sess)
	return s.snapshot(sess)
}

// RemoveItem removes the line for the product from the session's cart
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.RemoveItem(productID)
	s.persist(ctx, sessionID, sess)
	return s.snapshot(sess)
}

// UpdateQuantity sets the line quantity; zero or less removes the line
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.UpdateQuantity(productID, quantity)
	s.persist(ctx, sessionID, sess)
	return s.snapshot(sess)
}

// Clear empties the session's cart
func (s *Service) Clear(ctx context.Context, sessionID string) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.Clear()
	s.persist(ctx, sessionID, sess)
	return s.snapshot(sess)
}

// ToggleDrawer flips the drawer visibility. Visibility is ephemeral
// UI state and is not persisted.
func (s *Service) ToggleDrawer(ctx context.Context, sessionID string) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.ToggleDrawer()
	return s.snapshot(sess)
}

// OpenDrawer opens the drawer
func (s *Service) OpenDrawer(ctx context.Context, sessionID string) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.OpenDrawer()
	return s.snapshot(sess)
}

// CloseDrawer closes the drawer
func (s *Service) CloseDrawer(ctx context.Context, sessionID string) Snapshot {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.hydrate(ctx, sessionID, sess)
	sess.cart.CloseDrawer()
	return s.snapshot(sess)
}
