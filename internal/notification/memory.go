package notification

import (
	"context"
	"sync"
)

// Memory collects events in memory for tests and broker-less development.
type Memory struct {
	mu     sync.Mutex
	events []DecisionEvent
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) DecisionCompleted(_ context.Context, event DecisionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of all collected events.
func (m *Memory) Events() []DecisionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DecisionEvent{}, m.events...)
}
