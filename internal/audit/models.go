package audit

import (
	"time"

	id "sichrplace/pkg/domain"
)

// Screening types recorded in the audit trail.
const (
	TypeCreditCheck            = "credit_check"
	TypeEmploymentVerification = "employment_verification"
	TypeScreeningDecision      = "screening_decision"
)

// Entry is one append-only audit record for a verification outcome. The
// summary is a projection of the result and must never contain raw PII.
type Entry struct {
	RequestID        id.ScreeningID
	ScreeningType    string
	ResultSummary    map[string]any
	ProcessingTimeMs int64
	CreatedAt        time.Time
}
