package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher hands audit entries to the background worker. Emission is
// best-effort: a full queue or a failed write must never fail or roll back
// the screening decision it records. Failures are still logged locally and
// counted.
type Publisher struct {
	inbox   chan<- Entry
	logger  *slog.Logger
	dropped func() // metrics hook, optional
}

// PublisherOption configures the publisher.
type PublisherOption func(*Publisher)

// WithDroppedHook registers a callback invoked when an entry is dropped.
func WithDroppedHook(hook func()) PublisherOption {
	return func(p *Publisher) {
		if hook != nil {
			p.dropped = hook
		}
	}
}

// NewPublisher creates a publisher feeding the given inbox.
func NewPublisher(inbox chan<- Entry, logger *slog.Logger, opts ...PublisherOption) *Publisher {
	p := &Publisher{inbox: inbox, logger: logger, dropped: func() {}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit enqueues an entry without blocking the caller. Entries that cannot be
// queued are dropped and reported through the operator channel (log + metric).
func (p *Publisher) Emit(ctx context.Context, entry Entry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	select {
	case p.inbox <- entry:
	default:
		p.dropped()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit entry dropped: queue full",
				"request_id", entry.RequestID,
				"screening_type", entry.ScreeningType,
			)
		}
	}
}
