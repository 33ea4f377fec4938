// Package request persists screening requests and decisions. The in-memory
// implementation backs unit tests and broker-less development; the Postgres
// implementation is the production store.
package request

import (
	"context"
	"sync"

	"sichrplace/internal/screening/models"
	id "sichrplace/pkg/domain"
	"sichrplace/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	requests  map[id.ScreeningID]models.ScreeningRequest
	decisions map[id.ScreeningID]models.ScreeningDecision
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		requests:  make(map[id.ScreeningID]models.ScreeningRequest),
		decisions: make(map[id.ScreeningID]models.ScreeningDecision),
	}
}

func (s *InMemoryStore) Create(_ context.Context, request *models.ScreeningRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[request.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	s.requests[request.ID] = *request
	return nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, screeningID id.ScreeningID, status models.ScreeningStatus, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.requests[screeningID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.Status = status
	if note != "" {
		stored.Note = note
	}
	s.requests[screeningID] = stored
	return nil
}

func (s *InMemoryStore) SaveDecision(_ context.Context, decision *models.ScreeningDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[decision.RequestID]; !ok {
		return sentinel.ErrNotFound
	}
	s.decisions[decision.RequestID] = *decision
	return nil
}

func (s *InMemoryStore) GetByID(_ context.Context, screeningID id.ScreeningID) (*models.ScreeningRequest, *models.ScreeningDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.requests[screeningID]
	if !ok {
		return nil, nil, sentinel.ErrNotFound
	}
	request := stored
	if decision, ok := s.decisions[screeningID]; ok {
		d := decision
		return &request, &d, nil
	}
	return &request, nil, nil
}

func (s *InMemoryStore) GetLatestByKey(_ context.Context, tenantID id.TenantID, apartmentID id.ApartmentID) (*models.ScreeningRequest, *models.ScreeningDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.ScreeningRequest
	for _, stored := range s.requests {
		if stored.TenantID != tenantID || stored.ApartmentID != apartmentID {
			continue
		}
		r := stored
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, nil, sentinel.ErrNotFound
	}
	if decision, ok := s.decisions[latest.ID]; ok {
		d := decision
		return latest, &d, nil
	}
	return latest, nil, nil
}
