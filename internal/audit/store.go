package audit

import (
	"context"

	id "sichrplace/pkg/domain"
)

// Store is the append-only audit sink. Swap with concrete storage without
// touching the publisher or worker.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByRequest(ctx context.Context, requestID id.ScreeningID) ([]Entry, error)
}
