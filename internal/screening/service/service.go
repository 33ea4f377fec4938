// Package service orchestrates tenant screening: validation, deduplication,
// concurrent provider checks, decision evaluation, persistence, and audit.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"sichrplace/internal/audit"
	"sichrplace/internal/identity"
	"sichrplace/internal/screening/affordability"
	"sichrplace/internal/notification"
	"sichrplace/internal/screening/metrics"
	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/ports"
	"sichrplace/internal/screening/providers"
	"sichrplace/internal/screening/risk"
	id "sichrplace/pkg/domain"
	dErrors "sichrplace/pkg/domain-errors"
	"sichrplace/pkg/platform/sentinel"
	"sichrplace/pkg/requestcontext"
)

const defaultProviderTimeout = 15 * time.Second

// SubmitInput is a validated-before-dispatch screening submission.
type SubmitInput struct {
	TenantID     id.TenantID
	ApartmentID  id.ApartmentID
	MonthlyRent  float64
	ConsentGiven bool
	Personal     models.PersonalData
	Employment   models.EmploymentData
}

// Result is the service's answer for a submission or a status query.
type Result struct {
	Request  *models.ScreeningRequest
	Decision *models.ScreeningDecision
	// Reused is set when the answer came from a prior request: either a
	// still-valid decision or a screening currently in flight for the same
	// tenant and apartment.
	Reused bool
}

// DecisionInput carries the evaluated check results into the approval policy.
type DecisionInput struct {
	CreditRisk        models.RiskLevel
	EmploymentRisk    models.RiskLevel
	MeetsRentRule     bool
	EmployerConfirmed bool
	DocumentVerified  bool
}

// DecisionPolicy decides approval from the evaluated checks. Rejection is
// never automatic; a false return routes the application to manual review.
type DecisionPolicy func(DecisionInput) bool

// DefaultDecisionPolicy approves only when every check passes.
func DefaultDecisionPolicy(in DecisionInput) bool {
	return in.CreditRisk.IsAcceptable() &&
		in.EmploymentRisk.IsAcceptable() &&
		in.MeetsRentRule &&
		in.EmployerConfirmed &&
		in.DocumentVerified
}

// Service is the screening orchestrator.
type Service struct {
	store    ports.RequestStore
	credit   ports.CreditChecker
	employer ports.EmployerVerifier

	creditCache ports.CreditCache
	auditor     *audit.Publisher
	notifier    notification.Notifier
	metrics     *metrics.Metrics
	logger      *slog.Logger
	policy      DecisionPolicy
	tracer      trace.Tracer

	providerTimeout time.Duration

	// group coalesces concurrent submissions for the same tenant and
	// apartment into one in-flight screening.
	group singleflight.Group
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithCreditCache(cache ports.CreditCache) Option {
	return func(s *Service) { s.creditCache = cache }
}

func WithAuditPublisher(publisher *audit.Publisher) Option {
	return func(s *Service) { s.auditor = publisher }
}

func WithNotifier(notifier notification.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

func WithDecisionPolicy(policy DecisionPolicy) Option {
	return func(s *Service) {
		if policy != nil {
			s.policy = policy
		}
	}
}

func WithProviderTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.providerTimeout = timeout
		}
	}
}

// New constructs the orchestrator. Store and both providers are required.
func New(store ports.RequestStore, credit ports.CreditChecker, employer ports.EmployerVerifier, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("service: request store is required")
	}
	if credit == nil {
		return nil, errors.New("service: credit checker is required")
	}
	if employer == nil {
		return nil, errors.New("service: employer verifier is required")
	}

	s := &Service{
		store:           store,
		credit:          credit,
		employer:        employer,
		logger:          slog.Default(),
		policy:          DefaultDecisionPolicy,
		tracer:          otel.Tracer("sichrplace/screening"),
		providerTimeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit runs a full screening for one tenant and apartment. Concurrent
// submissions for the same pair share a single screening; a still-valid prior
// decision is returned without re-running any check.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "screening.submit")
	defer span.End()

	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	key := input.TenantID.String() + "|" + input.ApartmentID.String()
	value, err, shared := s.group.Do(key, func() (any, error) {
		return s.run(ctx, input)
	})
	if shared {
		s.metrics.IncrementDedupHit()
	}
	if err != nil {
		return nil, err
	}
	result := value.(*Result)
	if shared {
		// Coalesced callers share the winner's result.
		reused := *result
		reused.Reused = true
		return &reused, nil
	}
	return result, nil
}

// GetStatus returns a screening and, when completed, its decision.
func (s *Service) GetStatus(ctx context.Context, screeningID id.ScreeningID) (*Result, error) {
	request, decision, err := s.store.GetByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "screening not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load screening")
	}
	return &Result{Request: request, Decision: decision}, nil
}

// GetStatusByKey returns the latest screening for a tenant and apartment.
func (s *Service) GetStatusByKey(ctx context.Context, tenantID id.TenantID, apartmentID id.ApartmentID) (*Result, error) {
	request, decision, err := s.store.GetLatestByKey(ctx, tenantID, apartmentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no screening for tenant and apartment")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load screening by key")
	}
	return &Result{Request: request, Decision: decision}, nil
}

func (s *Service) validate(ctx context.Context, input SubmitInput) error {
	if !input.ConsentGiven {
		return dErrors.New(dErrors.CodeMissingConsent, "applicant consent is required before screening")
	}

	now := requestcontext.Now(ctx)
	var violations []dErrors.FieldViolation
	add := func(field, reason string) {
		violations = append(violations, dErrors.FieldViolation{Field: field, Reason: reason})
	}

	if input.TenantID.IsNil() {
		add("tenantId", "is required")
	}
	if input.ApartmentID.IsNil() {
		add("apartmentId", "is required")
	}
	if input.MonthlyRent <= 0 {
		add("monthlyRent", "must be greater than zero")
	}
	if input.Personal.FirstName == "" {
		add("personalData.firstName", "is required")
	}
	if input.Personal.LastName == "" {
		add("personalData.lastName", "is required")
	}
	if !identity.ValidBirthDate(input.Personal.DateOfBirth, now) {
		add("personalData.dateOfBirth", "must be an ISO date in the past")
	}
	if !identity.ValidPostalCode(input.Personal.PostalCode) {
		add("personalData.postalCode", "must be a five-digit postal code")
	}
	if input.Employment.EmployerName == "" {
		add("employmentData.employerName", "is required")
	}
	if input.Employment.NetSalary <= 0 {
		add("employmentData.netSalary", "must be greater than zero")
	}
	if input.Employment.GrossSalary <= 0 {
		add("employmentData.grossSalary", "must be greater than zero")
	} else if input.Employment.NetSalary > input.Employment.GrossSalary {
		add("employmentData.netSalary", "must not exceed gross salary")
	}
	switch input.Employment.EmploymentType {
	case models.EmploymentPermanent, models.EmploymentTemporary, models.EmploymentFreelance, models.EmploymentSelfEmployed:
	default:
		add("employmentData.employmentType", "must be one of permanent, temporary, freelance, self-employed")
	}
	switch input.Employment.ContractType {
	case models.ContractUnlimited, models.ContractLimited:
	default:
		add("employmentData.contractType", "must be unlimited or limited")
	}

	if len(violations) > 0 {
		return dErrors.New(dErrors.CodeValidation, "screening submission failed validation").
			WithViolations(violations...)
	}
	return nil
}

// run executes one deduplicated screening.
func (s *Service) run(ctx context.Context, input SubmitInput) (*Result, error) {
	now := requestcontext.Now(ctx)

	existing, priorDecision, err := s.store.GetLatestByKey(ctx, input.TenantID, input.ApartmentID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "look up prior screening")
	}
	if existing != nil {
		if existing.Status == models.StatusProcessing {
			return &Result{Request: existing, Reused: true}, nil
		}
		if priorDecision.Reusable(now) {
			s.metrics.IncrementDecisionReuse()
			s.logger.InfoContext(ctx, "reusing valid screening decision",
				"screening_id", existing.ID,
				"valid_until", priorDecision.CreditValidUntil,
			)
			return &Result{Request: existing, Decision: priorDecision, Reused: true}, nil
		}
	}

	request := models.NewScreeningRequest(input.TenantID, input.ApartmentID, input.MonthlyRent, now)
	if err := request.ApplyDispatch(now); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, request); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create screening request")
	}
	s.logger.InfoContext(ctx, "screening started",
		"screening_id", request.ID,
		"tenant_id", request.TenantID,
		"apartment_id", request.ApartmentID,
	)

	started := time.Now()
	checks, err := s.runChecks(ctx, input.Personal, input.Employment)
	if err != nil {
		return nil, s.fail(ctx, request, err)
	}

	decision, verification := s.evaluate(request, input, checks, requestcontext.Now(ctx))

	if err := s.store.SaveDecision(ctx, decision); err != nil {
		return nil, s.fail(ctx, request, dErrors.Wrap(err, dErrors.CodeInternal, "persist decision"))
	}
	if err := request.ApplyCompletion(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, request.ID, models.StatusCompleted, ""); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark screening completed",
			"screening_id", request.ID,
			"error", err,
		)
	}

	elapsed := time.Since(started)
	s.recordAudit(ctx, request.ID, checks, verification, decision, elapsed)
	s.notify(ctx, request, decision)
	s.metrics.IncrementOutcome(string(request.Status), string(decision.Outcome))
	s.metrics.ObserveScreeningLatency(elapsed)

	s.logger.InfoContext(ctx, "screening completed",
		"screening_id", request.ID,
		"outcome", decision.Outcome,
		"approved", decision.Approved,
		"duration_ms", elapsed.Milliseconds(),
	)
	return &Result{Request: request, Decision: decision}, nil
}

// fail marks the request failed and translates the provider error. The
// terminal status is persisted even when the caller has already gone away:
// a request left in processing would be mistaken for an in-flight screening
// and block every retry for its key.
func (s *Service) fail(ctx context.Context, request *models.ScreeningRequest, cause error) error {
	cancelled := ctx.Err() != nil
	if cancelled {
		ctx = context.WithoutCancel(ctx)
	}

	note := failureNote(cause)
	now := requestcontext.Now(ctx)
	if err := request.ApplyFailure(note, now); err != nil {
		s.logger.ErrorContext(ctx, "invalid failure transition", "screening_id", request.ID, "error", err)
	}
	if err := s.store.UpdateStatus(ctx, request.ID, models.StatusFailed, note); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark screening failed",
			"screening_id", request.ID,
			"error", err,
		)
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Entry{
			RequestID:     request.ID,
			ScreeningType: audit.TypeScreeningDecision,
			ResultSummary: map[string]any{
				"status": string(models.StatusFailed),
				"note":   note,
			},
		})
	}
	s.metrics.IncrementOutcome(string(models.StatusFailed), "")
	s.logger.WarnContext(ctx, "screening failed",
		"screening_id", request.ID,
		"note", note,
	)

	if cancelled {
		return dErrors.Wrap(cause, dErrors.CodeProviderUnavailable, "screening cancelled")
	}
	var pErr *providers.ProviderError
	if errors.As(cause, &pErr) {
		return dErrors.Wrap(cause, dErrors.CodeProviderUnavailable, "screening provider failed")
	}
	return cause
}

func failureNote(cause error) string {
	var pErr *providers.ProviderError
	if errors.As(cause, &pErr) {
		return fmt.Sprintf("%s provider failed: %s", pErr.ProviderID, pErr.Category)
	}
	return cause.Error()
}

// evaluate derives the employment verification and the final decision from
// the joined check results. Pure except for the injected policy.
func (s *Service) evaluate(request *models.ScreeningRequest, input SubmitInput, checks *checkResults, now time.Time) (*models.ScreeningDecision, models.EmploymentVerification) {
	income := input.Employment.TotalMonthlyIncome()
	afford := affordability.Evaluate(income, request.MonthlyRent)
	assessment := risk.Score(input.Employment, request.MonthlyRent, now)

	verification := models.EmploymentVerification{
		Data:               input.Employment,
		TotalMonthlyIncome: income,
		IncomeRatio:        afford.Ratio,
		RiskScore:          assessment.Score,
		RiskLevel:          assessment.Level,
		RiskFactors:        assessment.Factors,
		EmployerConfirmed:  checks.confirmation.EmployerConfirmed,
		DocumentVerified:   checks.confirmation.DocumentVerified,
	}

	approved := s.policy(DecisionInput{
		CreditRisk:        checks.credit.RiskCategory,
		EmploymentRisk:    verification.RiskLevel,
		MeetsRentRule:     afford.Meets,
		EmployerConfirmed: verification.EmployerConfirmed,
		DocumentVerified:  verification.DocumentVerified,
	})
	outcome := models.OutcomeReviewRequired
	if approved {
		outcome = models.OutcomeApproved
	}

	decision := &models.ScreeningDecision{
		RequestID:        request.ID,
		Approved:         approved,
		Outcome:          outcome,
		MeetsRentRule:    afford.Meets,
		FinalRiskLevel:   models.WorseOf(checks.credit.RiskCategory, verification.RiskLevel),
		CreditValidUntil: checks.credit.ValidUntil,
		Notes:            buildNotes(verification, checks.credit, afford.Meets, approved),
		CompletedAt:      now,
	}
	return decision, verification
}

func (s *Service) recordAudit(ctx context.Context, screeningID id.ScreeningID, checks *checkResults, verification models.EmploymentVerification, decision *models.ScreeningDecision, elapsed time.Duration) {
	if s.auditor == nil {
		return
	}

	s.auditor.Emit(ctx, audit.Entry{
		RequestID:     screeningID,
		ScreeningType: audit.TypeCreditCheck,
		ResultSummary: map[string]any{
			"credit_score":  checks.credit.CreditScore,
			"risk_category": string(checks.credit.RiskCategory),
			"valid_until":   checks.credit.ValidUntil,
			"from_cache":    checks.creditFromCache,
		},
		ProcessingTimeMs: checks.creditLatency.Milliseconds(),
	})
	s.auditor.Emit(ctx, audit.Entry{
		RequestID:     screeningID,
		ScreeningType: audit.TypeEmploymentVerification,
		ResultSummary: map[string]any{
			"risk_score":         verification.RiskScore,
			"risk_level":         string(verification.RiskLevel),
			"income_ratio":       verification.IncomeRatio,
			"meets_rent_rule":    decision.MeetsRentRule,
			"employer_confirmed": verification.EmployerConfirmed,
			"document_verified":  verification.DocumentVerified,
		},
		ProcessingTimeMs: checks.employerLatency.Milliseconds(),
	})
	s.auditor.Emit(ctx, audit.Entry{
		RequestID:     screeningID,
		ScreeningType: audit.TypeScreeningDecision,
		ResultSummary: map[string]any{
			"approved":         decision.Approved,
			"outcome":          string(decision.Outcome),
			"final_risk_level": string(decision.FinalRiskLevel),
			"meets_rent_rule":  decision.MeetsRentRule,
		},
		ProcessingTimeMs: elapsed.Milliseconds(),
	})
}

// notify publishes the decision event. Best-effort: a broker outage must not
// fail a completed screening.
func (s *Service) notify(ctx context.Context, request *models.ScreeningRequest, decision *models.ScreeningDecision) {
	if s.notifier == nil {
		return
	}
	event := notification.DecisionEvent{
		ScreeningID: request.ID,
		TenantID:    request.TenantID,
		ApartmentID: request.ApartmentID,
		Approved:    decision.Approved,
		Outcome:     string(decision.Outcome),
		CompletedAt: decision.CompletedAt,
	}
	if err := s.notifier.DecisionCompleted(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish decision event",
			"screening_id", request.ID,
			"error", err,
		)
	}
}
