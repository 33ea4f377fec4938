// Package notification informs downstream consumers (email delivery,
// landlord dashboards) that a screening decision completed. Only the event
// contract lives here; delivery mechanics belong to the consumers.
package notification

import (
	"context"
	"time"

	id "sichrplace/pkg/domain"
)

// DecisionEvent is emitted once per completed screening decision.
type DecisionEvent struct {
	ScreeningID id.ScreeningID `json:"screening_id"`
	TenantID    id.TenantID    `json:"tenant_id"`
	ApartmentID id.ApartmentID `json:"apartment_id"`
	Approved    bool           `json:"approved"`
	Outcome     string         `json:"outcome"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Notifier publishes decision events. Implementations must be safe for
// concurrent use.
type Notifier interface {
	DecisionCompleted(ctx context.Context, event DecisionEvent) error
}
