// Package ports defines the interfaces the screening service depends on.
// Defining them here keeps the orchestrator free of store and provider
// implementation details.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks CreditChecker,EmployerVerifier,RequestStore,CreditCache

import (
	"context"

	"sichrplace/internal/screening/models"
	id "sichrplace/pkg/domain"
)

// CreditChecker performs a credit bureau check for one applicant.
type CreditChecker interface {
	// Check runs the bureau lookup. Implementations must respect ctx
	// cancellation and return a providers.ProviderError on failure.
	Check(ctx context.Context, personal models.PersonalData) (*models.CreditCheckResult, error)
}

// EmployerVerifier confirms employment with the stated employer and checks
// the submitted documents.
type EmployerVerifier interface {
	Verify(ctx context.Context, data models.EmploymentData) (models.EmployerConfirmation, error)
}

// RequestStore persists screening requests and their decisions.
type RequestStore interface {
	// Create stores a new request. Returns sentinel.ErrAlreadyExists when the
	// screening ID is already present.
	Create(ctx context.Context, request *models.ScreeningRequest) error

	// UpdateStatus records a status transition together with an optional note.
	UpdateStatus(ctx context.Context, screeningID id.ScreeningID, status models.ScreeningStatus, note string) error

	// SaveDecision stores the completed decision for a request.
	SaveDecision(ctx context.Context, decision *models.ScreeningDecision) error

	// GetByID returns a request and, when the screening has completed, its
	// decision. Returns sentinel.ErrNotFound for unknown IDs.
	GetByID(ctx context.Context, screeningID id.ScreeningID) (*models.ScreeningRequest, *models.ScreeningDecision, error)

	// GetLatestByKey returns the most recent request for a
	// (tenant, apartment) pair, with its decision when one exists.
	GetLatestByKey(ctx context.Context, tenantID id.TenantID, apartmentID id.ApartmentID) (*models.ScreeningRequest, *models.ScreeningDecision, error)
}

// CreditCache caches bureau results keyed by applicant identity so a fresh
// check is not repeated inside the validity window.
type CreditCache interface {
	// Get returns a cached result. Returns sentinel.ErrNotFound when absent
	// and sentinel.ErrExpired when present but past its validity window.
	Get(ctx context.Context, identityKey string) (*models.CreditCheckResult, error)

	// Put stores a result until its ValidUntil timestamp.
	Put(ctx context.Context, result *models.CreditCheckResult) error
}
