package service

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sichrplace/internal/audit"
	"sichrplace/internal/notification"
	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/ports/mocks"
	"sichrplace/internal/screening/providers"
	"sichrplace/internal/screening/store/creditcache"
	"sichrplace/internal/screening/store/request"
	id "sichrplace/pkg/domain"
	dErrors "sichrplace/pkg/domain-errors"
	"sichrplace/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	credit   *mocks.MockCreditChecker
	employer *mocks.MockEmployerVerifier
	store    *request.InMemoryStore
	cache    *creditcache.InMemoryStore
	notifier *notification.Memory
	service  *Service
	now      time.Time
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.credit = mocks.NewMockCreditChecker(s.ctrl)
	s.employer = mocks.NewMockEmployerVerifier(s.ctrl)
	s.store = request.NewInMemoryStore()
	s.cache = creditcache.NewInMemoryStore()
	s.notifier = notification.NewMemory()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	svc, err := New(s.store, s.credit, s.employer,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithCreditCache(s.cache),
		WithNotifier(s.notifier),
		WithProviderTimeout(5*time.Second),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) input() SubmitInput {
	return SubmitInput{
		TenantID:     mustTenantID(s.T(), "7ae8c3de-1b55-4a6e-9a36-6a07f4a3c001"),
		ApartmentID:  mustApartmentID(s.T(), "7ae8c3de-1b55-4a6e-9a36-6a07f4a3c002"),
		MonthlyRent:  1000,
		ConsentGiven: true,
		Personal: models.PersonalData{
			FirstName:   "Anna",
			LastName:    "Schmidt",
			DateOfBirth: "1990-06-15",
			Address:     "Musterstr. 1",
			City:        "Berlin",
			PostalCode:  "10115",
		},
		Employment: models.EmploymentData{
			EmploymentType:      models.EmploymentPermanent,
			ContractType:        models.ContractUnlimited,
			EmployerName:        "Acme GmbH",
			JobTitle:            "Engineer",
			GrossSalary:         5600,
			NetSalary:           3800,
			EmploymentStartDate: s.now.AddDate(-3, 0, 0),
			PayslipDocuments:    []string{"payslip-2026-01.pdf"},
			AdditionalIncome:    200,
		},
	}
}

func (s *ServiceSuite) creditResult(score int) *models.CreditCheckResult {
	return &models.CreditCheckResult{
		IdentityKey:  s.input().Personal.IdentityKey(),
		CreditScore:  score,
		RiskCategory: models.RiskCategoryFor(score),
		CheckedAt:    s.now,
		ValidUntil:   s.now.Add(90 * 24 * time.Hour),
	}
}

func (s *ServiceSuite) TestSubmitApproved() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil)

	result, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)
	s.False(result.Reused)
	s.Equal(models.StatusCompleted, result.Request.Status)

	decision := result.Decision
	s.Require().NotNil(decision)
	s.True(decision.Approved)
	s.Equal(models.OutcomeApproved, decision.Outcome)
	s.True(decision.MeetsRentRule)
	s.Equal(models.RiskVeryLow, decision.FinalRiskLevel)
	s.Equal(s.now.Add(90*24*time.Hour), decision.CreditValidUntil)
	s.Contains(decision.Notes, "All screening checks passed")

	stored, storedDecision, err := s.store.GetByID(s.ctx, result.Request.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, stored.Status)
	s.Equal(decision, storedDecision)

	events := s.notifier.Events()
	s.Require().Len(events, 1)
	s.Equal(result.Request.ID, events[0].ScreeningID)
	s.True(events[0].Approved)
}

func (s *ServiceSuite) TestSubmitWithoutConsent() {
	input := s.input()
	input.ConsentGiven = false

	_, err := s.service.Submit(s.ctx, input)
	s.True(dErrors.HasCode(err, dErrors.CodeMissingConsent))
}

func (s *ServiceSuite) TestSubmitValidationViolations() {
	input := s.input()
	input.MonthlyRent = 0
	input.Personal.PostalCode = "ABC"
	input.Employment.NetSalary = 0

	_, err := s.service.Submit(s.ctx, input)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	fields := make(map[string]bool)
	for _, v := range dErrors.ViolationsOf(err) {
		fields[v.Field] = true
	}
	s.True(fields["monthlyRent"])
	s.True(fields["personalData.postalCode"])
	s.True(fields["employmentData.netSalary"])
}

func (s *ServiceSuite) TestNetSalaryMustNotExceedGross() {
	input := s.input()
	input.Employment.GrossSalary = 3000
	input.Employment.NetSalary = 3500

	_, err := s.service.Submit(s.ctx, input)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	var found bool
	for _, v := range dErrors.ViolationsOf(err) {
		if v.Field == "employmentData.netSalary" {
			found = true
		}
	}
	s.True(found)
}

func (s *ServiceSuite) TestBelowRentRuleRequiresReview() {
	input := s.input()
	input.Employment.NetSalary = 1800
	input.Employment.AdditionalIncome = 0

	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(750), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil)

	result, err := s.service.Submit(s.ctx, input)
	s.Require().NoError(err)

	decision := result.Decision
	s.False(decision.Approved)
	s.Equal(models.OutcomeReviewRequired, decision.Outcome)
	s.False(decision.MeetsRentRule)
	s.Contains(decision.Notes, "Does not meet 3x rent rule (1.80x)")
}

func (s *ServiceSuite) TestUnconfirmedEmployerRequiresReview() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: false, DocumentVerified: true}, nil)

	result, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	s.False(result.Decision.Approved)
	s.Equal(models.OutcomeReviewRequired, result.Decision.Outcome)
	s.Contains(result.Decision.Notes, "Employer confirmation failed")
}

func (s *ServiceSuite) TestHighCreditRiskRequiresReview() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(580), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil)

	result, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	s.False(result.Decision.Approved)
	s.Equal(models.RiskHigh, result.Decision.FinalRiskLevel)
	s.Contains(result.Decision.Notes, "Elevated credit risk: HIGH")
}

func (s *ServiceSuite) TestProviderFailureMarksScreeningFailed() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).
		Return(nil, newOutageError())
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		AnyTimes()

	_, err := s.service.Submit(s.ctx, s.input())
	s.True(dErrors.HasCode(err, dErrors.CodeProviderUnavailable))

	input := s.input()
	stored, decision, err := s.store.GetLatestByKey(s.ctx, input.TenantID, input.ApartmentID)
	s.Require().NoError(err)
	s.Equal(models.StatusFailed, stored.Status)
	s.Contains(stored.Note, "schufa-simulated")
	s.Nil(decision)
}

func (s *ServiceSuite) TestCancelledSubmissionAllowsRetry() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, _ models.PersonalData) (*models.CreditCheckResult, error) {
			cancel()
			<-callCtx.Done()
			return nil, providers.New(providers.ErrorTimeout, "schufa-simulated", "credit check timed out", callCtx.Err())
		})
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		AnyTimes()

	_, err := s.service.Submit(ctx, s.input())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeProviderUnavailable))

	// The terminal status must land even though the caller is gone.
	input := s.input()
	stored, decision, err := s.store.GetLatestByKey(s.ctx, input.TenantID, input.ApartmentID)
	s.Require().NoError(err)
	s.Equal(models.StatusFailed, stored.Status)
	s.Nil(decision)

	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)

	result, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)
	s.False(result.Reused)
	s.Equal(models.StatusCompleted, result.Request.Status)
	s.NotEqual(stored.ID, result.Request.ID)
}

func (s *ServiceSuite) TestFailedScreeningReleasesKey() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, newOutageError())
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		AnyTimes()

	_, err := s.service.Submit(s.ctx, s.input())
	s.Require().Error(err)

	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)

	result, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)
	s.False(result.Reused)
	s.Equal(models.StatusCompleted, result.Request.Status)
}

func (s *ServiceSuite) TestDecisionReuseWithinWindow() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil).Times(1)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		Times(1)

	first, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	second, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)
	s.True(second.Reused)
	s.Equal(first.Request.ID, second.Request.ID)
	s.Equal(first.Decision, second.Decision)
}

func (s *ServiceSuite) TestExpiredDecisionTriggersRescreen() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil).Times(2)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		Times(2)

	first, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	later := requestcontext.WithTime(context.Background(), s.now.Add(91*24*time.Hour))
	second, err := s.service.Submit(later, s.input())
	s.Require().NoError(err)
	s.False(second.Reused)
	s.NotEqual(first.Request.ID, second.Request.ID)
}

func (s *ServiceSuite) TestCreditCacheSkipsSecondBureauCall() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil).Times(1)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		Times(2)

	_, err := s.service.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	// Same applicant, different apartment: bureau result is reused from cache.
	input := s.input()
	input.ApartmentID = mustApartmentID(s.T(), "7ae8c3de-1b55-4a6e-9a36-6a07f4a3c042")

	result, err := s.service.Submit(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, result.Request.Status)
	s.True(result.Decision.Approved)
}

func (s *ServiceSuite) TestConcurrentSubmissionsCoalesce() {
	release := make(chan struct{})
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.PersonalData) (*models.CreditCheckResult, error) {
			<-release
			return s.creditResult(820), nil
		}).
		Times(1)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil).
		Times(1)

	var wg sync.WaitGroup
	results := make([]*Result, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = s.service.Submit(s.ctx, s.input())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Require().NoError(errs[0])
	s.Require().NoError(errs[1])
	s.Equal(results[0].Request.ID, results[1].Request.ID)
}

func (s *ServiceSuite) TestAuditTrailRecorded() {
	inbox := make(chan audit.Entry, 16)
	auditStore := audit.NewInMemoryStore()
	worker := audit.NewWorker(auditStore, inbox, slog.New(slog.DiscardHandler))
	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(workerCtx) }()

	svc, err := New(s.store, s.credit, s.employer,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithAuditPublisher(audit.NewPublisher(inbox, slog.New(slog.DiscardHandler))),
	)
	s.Require().NoError(err)

	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil)

	result, err := svc.Submit(s.ctx, s.input())
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		entries, listErr := auditStore.ListByRequest(context.Background(), result.Request.ID)
		return listErr == nil && len(entries) == 3
	}, time.Second, 10*time.Millisecond)

	entries, err := auditStore.ListByRequest(context.Background(), result.Request.ID)
	s.Require().NoError(err)
	types := make(map[string]bool)
	for _, entry := range entries {
		types[entry.ScreeningType] = true
	}
	s.True(types[audit.TypeCreditCheck])
	s.True(types[audit.TypeEmploymentVerification])
	s.True(types[audit.TypeScreeningDecision])
}

func (s *ServiceSuite) TestGetStatusNotFound() {
	_, err := s.service.GetStatus(s.ctx, mustScreeningID(s.T(), "7ae8c3de-1b55-4a6e-9a36-6a07f4a3c0ff"))
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestGetStatusByKey() {
	s.credit.EXPECT().Check(gomock.Any(), gomock.Any()).Return(s.creditResult(820), nil)
	s.employer.EXPECT().Verify(gomock.Any(), gomock.Any()).
		Return(models.EmployerConfirmation{EmployerConfirmed: true, DocumentVerified: true}, nil)

	input := s.input()
	submitted, err := s.service.Submit(s.ctx, input)
	s.Require().NoError(err)

	result, err := s.service.GetStatusByKey(s.ctx, input.TenantID, input.ApartmentID)
	s.Require().NoError(err)
	s.Equal(submitted.Request.ID, result.Request.ID)
	s.Require().NotNil(result.Decision)
	s.Equal(submitted.Decision.Outcome, result.Decision.Outcome)
}

func newOutageError() error {
	return providers.New(providers.ErrorProviderOutage, "schufa-simulated", "bureau unreachable", nil)
}

func mustTenantID(t *testing.T, raw string) id.TenantID {
	t.Helper()
	parsed, err := id.ParseTenantID(raw)
	require.NoError(t, err)
	return parsed
}

func mustApartmentID(t *testing.T, raw string) id.ApartmentID {
	t.Helper()
	parsed, err := id.ParseApartmentID(raw)
	require.NoError(t, err)
	return parsed
}

func mustScreeningID(t *testing.T, raw string) id.ScreeningID {
	t.Helper()
	parsed, err := id.ParseScreeningID(raw)
	require.NoError(t, err)
	return parsed
}
