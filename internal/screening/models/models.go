// Package models holds the screening domain types. Types here are
// transport-agnostic; handlers convert to and from wire shapes.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	id "sichrplace/pkg/domain"
	dErrors "sichrplace/pkg/domain-errors"
)

// ScreeningStatus tracks a request through its lifecycle.
//
// Transitions: pending → processing → {completed, failed}. Both completed and
// failed are terminal; there are no backward transitions.
type ScreeningStatus string

const (
	StatusPending    ScreeningStatus = "pending"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

// CanTransitionTo reports whether the state machine permits the transition.
func (s ScreeningStatus) CanTransitionTo(next ScreeningStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s ScreeningStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// RiskLevel is the coarse classification derived from a numeric score. It is
// shared by the credit check (risk category) and the employment model.
type RiskLevel string

const (
	RiskVeryLow RiskLevel = "VERY_LOW"
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
)

// IsAcceptable reports whether the level passes the default approval policy.
func (r RiskLevel) IsAcceptable() bool {
	return r == RiskVeryLow || r == RiskLow
}

func (r RiskLevel) severity() int {
	switch r {
	case RiskVeryLow:
		return 0
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	default:
		return 3
	}
}

// WorseOf returns the riskier of two levels.
func WorseOf(a, b RiskLevel) RiskLevel {
	if a.severity() >= b.severity() {
		return a
	}
	return b
}

// Outcome labels the final decision. A failing check downgrades to review
// rather than rejecting outright; rejection is a policy decision left to
// operators.
type Outcome string

const (
	OutcomeApproved       Outcome = "APPROVED"
	OutcomeReviewRequired Outcome = "REVIEW_REQUIRED"
)

// EmploymentType categorizes how the applicant earns income.
type EmploymentType string

const (
	EmploymentPermanent    EmploymentType = "permanent"
	EmploymentTemporary    EmploymentType = "temporary"
	EmploymentFreelance    EmploymentType = "freelance"
	EmploymentSelfEmployed EmploymentType = "self-employed"
)

// ContractType categorizes the employment contract duration.
type ContractType string

const (
	ContractUnlimited ContractType = "unlimited"
	ContractLimited   ContractType = "limited"
)

// PersonalData identifies the applicant towards the credit bureau. It is
// validated before any provider contact and never persisted raw by this
// module.
type PersonalData struct {
	FirstName   string
	LastName    string
	DateOfBirth string // ISO date, validated by the identity service
	Address     string
	City        string
	PostalCode  string
}

// IdentityKey derives the pseudonymous cache key for credit results. The same
// person screening for a different apartment reuses the bureau result, and
// the cache never stores raw PII as a key.
func (p PersonalData) IdentityKey() string {
	norm := strings.ToLower(strings.Join([]string{
		strings.TrimSpace(p.FirstName),
		strings.TrimSpace(p.LastName),
		strings.TrimSpace(p.DateOfBirth),
		strings.TrimSpace(p.PostalCode),
	}, "|"))
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}

// EmploymentData is the applicant-supplied employment and income statement.
type EmploymentData struct {
	EmploymentType      EmploymentType
	ContractType        ContractType
	EmployerName        string
	EmployerAddress     string
	EmployerPhone       string
	EmployerEmail       string
	JobTitle            string
	GrossSalary         float64
	NetSalary           float64
	EmploymentStartDate time.Time // zero means unknown
	PayslipDocuments    []string
	AdditionalIncome    float64
	OtherIncomeSource   string
}

// TotalMonthlyIncome is net salary plus declared additional income.
func (e EmploymentData) TotalMonthlyIncome() float64 {
	return e.NetSalary + e.AdditionalIncome
}

// HasCompleteDocuments reports whether payslip documentation was provided.
func (e EmploymentData) HasCompleteDocuments() bool {
	return len(e.PayslipDocuments) > 0
}

// ScreeningRequest is the aggregate root for one screening submission.
// One request owns at most one final decision.
type ScreeningRequest struct {
	ID               id.ScreeningID
	TenantID         id.TenantID
	ApartmentID      id.ApartmentID
	MonthlyRent      float64
	ConsentGiven     bool
	ConsentTimestamp time.Time
	Status           ScreeningStatus
	Note             string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewScreeningRequest constructs a request in pending state. The orchestrator
// applies the dispatch transition before handing the request to providers.
func NewScreeningRequest(tenantID id.TenantID, apartmentID id.ApartmentID, monthlyRent float64, now time.Time) *ScreeningRequest {
	return &ScreeningRequest{
		ID:               id.NewScreeningID(),
		TenantID:         tenantID,
		ApartmentID:      apartmentID,
		MonthlyRent:      monthlyRent,
		ConsentGiven:     true,
		ConsentTimestamp: now,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ApplyDispatch transitions the request from pending to processing.
func (r *ScreeningRequest) ApplyDispatch(now time.Time) error {
	if !r.Status.CanTransitionTo(StatusProcessing) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "cannot dispatch screening in status %s", r.Status)
	}
	r.Status = StatusProcessing
	r.UpdatedAt = now
	return nil
}

// ApplyCompletion transitions the request to completed.
func (r *ScreeningRequest) ApplyCompletion(now time.Time) error {
	if !r.Status.CanTransitionTo(StatusCompleted) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "cannot complete screening in status %s", r.Status)
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now
	return nil
}

// ApplyFailure transitions the request to failed with a diagnostic note.
func (r *ScreeningRequest) ApplyFailure(note string, now time.Time) error {
	if !r.Status.CanTransitionTo(StatusFailed) {
		return dErrors.Newf(dErrors.CodeInvariantViolation, "cannot fail screening in status %s", r.Status)
	}
	r.Status = StatusFailed
	r.Note = note
	r.UpdatedAt = now
	return nil
}

// CreditFactor is one entry of the bureau's factor breakdown.
type CreditFactor struct {
	Factor string `json:"factor"`
	Impact string `json:"impact"`
	Weight int    `json:"weight"`
}

// CreditCheckResult is the bureau's answer for one identity. A result with
// ValidUntil in the future is reused without recontacting the provider.
type CreditCheckResult struct {
	IdentityKey  string
	CreditScore  int // 0–1000
	RiskCategory RiskLevel
	CheckedAt    time.Time
	ValidUntil   time.Time
	Factors      []CreditFactor
}

// IsValid reports whether the result is still within its reuse window.
func (c *CreditCheckResult) IsValid(now time.Time) bool {
	return c != nil && now.Before(c.ValidUntil)
}

// RiskCategoryFor maps a bureau score to its risk category.
func RiskCategoryFor(score int) RiskLevel {
	switch {
	case score >= 800:
		return RiskVeryLow
	case score >= 700:
		return RiskLow
	case score >= 600:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FactorImpact labels how a risk factor moved the score.
type FactorImpact string

const (
	ImpactPositive FactorImpact = "positive"
	ImpactNegative FactorImpact = "negative"
)

// RiskFactor is one weighted contribution to the employment risk score.
// Order is preserved: factors are listed in evaluation order.
type RiskFactor struct {
	Factor string       `json:"factor"`
	Impact FactorImpact `json:"impact"`
	Points int          `json:"points"`
}

// EmploymentVerification is the outcome of the employment and income check.
type EmploymentVerification struct {
	Data               EmploymentData
	TotalMonthlyIncome float64
	IncomeRatio        float64 // rounded to 2 decimals
	RiskScore          int     // clamped to [0, 150]
	RiskLevel          RiskLevel
	RiskFactors        []RiskFactor
	EmployerConfirmed  bool
	DocumentVerified   bool
}

// EmployerConfirmation is the employer verification provider's answer.
type EmployerConfirmation struct {
	EmployerConfirmed bool
	DocumentVerified  bool
}

// ScreeningDecision is immutable once written. It is superseded only by a new
// request created after CreditValidUntil passes.
type ScreeningDecision struct {
	RequestID        id.ScreeningID
	Approved         bool
	Outcome          Outcome
	MeetsRentRule    bool
	FinalRiskLevel   RiskLevel
	CreditValidUntil time.Time
	Notes            string
	CompletedAt      time.Time
}

// Reusable reports whether the decision may still be served for new
// submissions of the same key.
func (d *ScreeningDecision) Reusable(now time.Time) bool {
	return d != nil && now.Before(d.CreditValidUntil)
}
