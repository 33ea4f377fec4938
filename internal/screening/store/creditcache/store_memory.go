// Package creditcache caches credit bureau results keyed by applicant
// identity. A cached result is reused until its validity window closes, so
// the same person screening for another apartment does not trigger a second
// bureau check.
package creditcache

import (
	"context"
	"sync"
	"time"

	"sichrplace/internal/screening/models"
	"sichrplace/pkg/platform/sentinel"
	"sichrplace/pkg/requestcontext"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string]models.CreditCheckResult
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{results: make(map[string]models.CreditCheckResult)}
}

func (s *InMemoryStore) Get(ctx context.Context, identityKey string) (*models.CreditCheckResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.results[identityKey]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !stored.IsValid(requestcontext.Now(ctx)) {
		return nil, sentinel.ErrExpired
	}
	result := stored
	return &result, nil
}

func (s *InMemoryStore) Put(ctx context.Context, result *models.CreditCheckResult) error {
	if !result.ValidUntil.After(requestcontext.Now(ctx)) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.IdentityKey] = *result
	return nil
}

// Sweep drops expired entries. The memory store has no TTL support, so the
// owner calls this periodically.
func (s *InMemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, stored := range s.results {
		if !now.Before(stored.ValidUntil) {
			delete(s.results, key)
		}
	}
}
