//go:build integration

package request_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/store/request"
	id "sichrplace/pkg/domain"
	"sichrplace/pkg/platform/sentinel"
	"sichrplace/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	pool     *pgxpool.Pool
	store    *request.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	pool, err := pgxpool.New(context.Background(), s.postgres.DSN)
	s.Require().NoError(err)
	s.pool = pool
	s.store = request.NewPostgres(pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "screening_decisions", "screening_requests")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) newRequest(now time.Time) *models.ScreeningRequest {
	tenantID, err := id.ParseTenantID("7ae8c3de-1b55-4a6e-9a36-6a07f4a3c001")
	s.Require().NoError(err)
	apartmentID, err := id.ParseApartmentID("7ae8c3de-1b55-4a6e-9a36-6a07f4a3c002")
	s.Require().NoError(err)
	request := models.NewScreeningRequest(tenantID, apartmentID, 1250.50, now)
	s.Require().NoError(request.ApplyDispatch(now))
	return request
}

func (s *PostgresStoreSuite) TestCreateAndGetByID() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created := s.newRequest(now)
	s.Require().NoError(s.store.Create(ctx, created))

	stored, decision, err := s.store.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Nil(decision)
	s.Equal(created.ID, stored.ID)
	s.Equal(created.TenantID, stored.TenantID)
	s.Equal(created.ApartmentID, stored.ApartmentID)
	s.InDelta(created.MonthlyRent, stored.MonthlyRent, 0.001)
	s.Equal(models.StatusProcessing, stored.Status)
	s.WithinDuration(now, stored.CreatedAt, time.Second)
}

func (s *PostgresStoreSuite) TestCreateDuplicate() {
	ctx := context.Background()
	created := s.newRequest(time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, created))
	s.ErrorIs(s.store.Create(ctx, created), sentinel.ErrAlreadyExists)
}

func (s *PostgresStoreSuite) TestUpdateStatus() {
	ctx := context.Background()
	created := s.newRequest(time.Now().UTC())
	s.Require().NoError(s.store.Create(ctx, created))

	s.Require().NoError(s.store.UpdateStatus(ctx, created.ID, models.StatusFailed, "employer verification unavailable"))

	stored, _, err := s.store.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusFailed, stored.Status)
	s.Equal("employer verification unavailable", stored.Note)
}

func (s *PostgresStoreSuite) TestUpdateStatusUnknownID() {
	err := s.store.UpdateStatus(context.Background(), id.NewScreeningID(), models.StatusCompleted, "")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSaveAndReadDecision() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created := s.newRequest(now)
	s.Require().NoError(s.store.Create(ctx, created))
	s.Require().NoError(s.store.UpdateStatus(ctx, created.ID, models.StatusCompleted, ""))

	decision := &models.ScreeningDecision{
		RequestID:        created.ID,
		Approved:         false,
		Outcome:          models.OutcomeReviewRequired,
		MeetsRentRule:    false,
		FinalRiskLevel:   models.RiskMedium,
		CreditValidUntil: now.Add(90 * 24 * time.Hour),
		Notes:            "Income below 3x monthly rent",
		CompletedAt:      now,
	}
	s.Require().NoError(s.store.SaveDecision(ctx, decision))

	stored, storedDecision, err := s.store.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, stored.Status)
	s.Require().NotNil(storedDecision)
	s.Equal(decision.Outcome, storedDecision.Outcome)
	s.Equal(decision.FinalRiskLevel, storedDecision.FinalRiskLevel)
	s.Equal(decision.Notes, storedDecision.Notes)
	s.False(storedDecision.Approved)
	s.WithinDuration(decision.CreditValidUntil, storedDecision.CreditValidUntil, time.Second)
}

func (s *PostgresStoreSuite) TestGetLatestByKey() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	first := s.newRequest(now.Add(-time.Hour))
	s.Require().NoError(s.store.Create(ctx, first))

	second := models.NewScreeningRequest(first.TenantID, first.ApartmentID, 1250.50, now)
	s.Require().NoError(s.store.Create(ctx, second))

	latest, _, err := s.store.GetLatestByKey(ctx, first.TenantID, first.ApartmentID)
	s.Require().NoError(err)
	s.Equal(second.ID, latest.ID)
}

func (s *PostgresStoreSuite) TestGetLatestByKeyNotFound() {
	tenantID, err := id.ParseTenantID("7ae8c3de-1b55-4a6e-9a36-6a07f4a3c050")
	s.Require().NoError(err)
	apartmentID, err := id.ParseApartmentID("7ae8c3de-1b55-4a6e-9a36-6a07f4a3c051")
	s.Require().NoError(err)

	_, _, err = s.store.GetLatestByKey(context.Background(), tenantID, apartmentID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
