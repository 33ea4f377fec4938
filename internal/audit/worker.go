package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit entries from a channel and persists them. A failed
// write is logged locally and the worker keeps running; audit persistence
// never propagates errors back into the decision path.
type Worker struct {
	store  Store
	inbox  <-chan Entry
	logger *slog.Logger
}

// NewWorker creates a worker draining the given inbox into the store.
func NewWorker(store Store, inbox <-chan Entry, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes entries until the context is cancelled, then flushes
// whatever is still buffered so accepted entries are not lost on shutdown.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case entry := <-w.inbox:
			w.append(ctx, entry)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case entry := <-w.inbox:
			w.append(ctx, entry)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, entry Entry) {
	if err := w.store.Append(ctx, entry); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "audit append failed",
			"request_id", entry.RequestID,
			"screening_type", entry.ScreeningType,
			"error", err,
		)
	}
}
