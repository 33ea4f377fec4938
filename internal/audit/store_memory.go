package audit

import (
	"context"
	"sync"

	id "sichrplace/pkg/domain"
)

// InMemoryStore keeps audit entries in memory for tests and development.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[id.ScreeningID][]Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[id.ScreeningID][]Entry)}
}

func (s *InMemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.RequestID] = append(s.entries[entry.RequestID], entry)
	return nil
}

func (s *InMemoryStore) ListByRequest(_ context.Context, requestID id.ScreeningID) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.entries[requestID]...), nil
}
