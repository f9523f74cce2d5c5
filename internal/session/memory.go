package session

import (
	"context"
	"sync"
	"time"

	"catalog-storefront/internal/domain"
)

type memoryEntry struct {
	lines     []domain.CartLine
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory returns a process-local Store.
func NewMemory(ttl time.Duration) Store {
	return &memoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memoryStore) Load(_ context.Context, id string) ([]domain.CartLine, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, nil
	}
	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, id string, lines []domain.CartLine) error {
	if len(lines) == 0 {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil
	}
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	m.mu.Lock()
	m.entries[id] = memoryEntry{lines: stored, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Ping(context.Context) error {
	return nil
}
