package cartstore

import (
	"context"
	"sync"

	"github.com/farmstore/backend/internal/domain/cart"
)

// MemoryStore keeps session carts in process memory. Carts are lost on
// restart, so it is only suitable for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore creates a new in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Storage returns the cart slot for one session
func (s *MemoryStore) Storage(sessionID string) cart.Storage {
	return &memorySlot{store: s, key: sessionID}
}

type memorySlot struct {
	store *MemoryStore
	key   string
}

func (m *memorySlot) Load(ctx context.Context) ([]cart.Line, error) {
	m.store.mu.RLock()
	data, ok := m.store.slots[m.key]
	m.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeSlot(data)
}

func (m *memorySlot) Save(ctx context.Context, lines []cart.Line) error {
	data, err := encodeSlot(lines)
	if err != nil {
		return err
	}
	m.store.mu.Lock()
	m.store.slots[m.key] = data
	m.store.mu.Unlock()
	return nil
}
