package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sichrplace/internal/screening/models"
	id "sichrplace/pkg/domain"
	"sichrplace/pkg/platform/sentinel"
)

// unique_violation per the PostgreSQL error code table.
const pgUniqueViolation = "23505"

// PostgresStore persists requests and decisions in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed request store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, request *models.ScreeningRequest) error {
	const query = `
		INSERT INTO screening_requests
			(id, tenant_id, apartment_id, monthly_rent, consent_given, consent_timestamp, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.pool.Exec(ctx, query,
		uuid.UUID(request.ID),
		uuid.UUID(request.TenantID),
		uuid.UUID(request.ApartmentID),
		request.MonthlyRent,
		request.ConsentGiven,
		request.ConsentTimestamp,
		string(request.Status),
		request.Note,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("create screening request: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, screeningID id.ScreeningID, status models.ScreeningStatus, note string) error {
	const query = `
		UPDATE screening_requests
		SET status = $2, note = CASE WHEN $3 <> '' THEN $3 ELSE note END, updated_at = now()
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, uuid.UUID(screeningID), string(status), note)
	if err != nil {
		return fmt.Errorf("update screening status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveDecision(ctx context.Context, decision *models.ScreeningDecision) error {
	const query = `
		INSERT INTO screening_decisions
			(request_id, approved, outcome, meets_rent_rule, final_risk_level, credit_valid_until, notes, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.Exec(ctx, query,
		uuid.UUID(decision.RequestID),
		decision.Approved,
		string(decision.Outcome),
		decision.MeetsRentRule,
		string(decision.FinalRiskLevel),
		decision.CreditValidUntil,
		decision.Notes,
		decision.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save screening decision: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, screeningID id.ScreeningID) (*models.ScreeningRequest, *models.ScreeningDecision, error) {
	const query = `
		SELECT r.id, r.tenant_id, r.apartment_id, r.monthly_rent, r.consent_given, r.consent_timestamp,
		       r.status, r.note, r.created_at, r.updated_at,
		       d.approved, d.outcome, d.meets_rent_rule, d.final_risk_level, d.credit_valid_until, d.notes, d.completed_at
		FROM screening_requests r
		LEFT JOIN screening_decisions d ON d.request_id = r.id
		WHERE r.id = $1`

	return s.scanOne(s.pool.QueryRow(ctx, query, uuid.UUID(screeningID)), "get screening by id")
}

func (s *PostgresStore) GetLatestByKey(ctx context.Context, tenantID id.TenantID, apartmentID id.ApartmentID) (*models.ScreeningRequest, *models.ScreeningDecision, error) {
	const query = `
		SELECT r.id, r.tenant_id, r.apartment_id, r.monthly_rent, r.consent_given, r.consent_timestamp,
		       r.status, r.note, r.created_at, r.updated_at,
		       d.approved, d.outcome, d.meets_rent_rule, d.final_risk_level, d.credit_valid_until, d.notes, d.completed_at
		FROM screening_requests r
		LEFT JOIN screening_decisions d ON d.request_id = r.id
		WHERE r.tenant_id = $1 AND r.apartment_id = $2
		ORDER BY r.created_at DESC
		LIMIT 1`

	return s.scanOne(s.pool.QueryRow(ctx, query, uuid.UUID(tenantID), uuid.UUID(apartmentID)), "get latest screening by key")
}

func (s *PostgresStore) scanOne(row pgx.Row, op string) (*models.ScreeningRequest, *models.ScreeningDecision, error) {
	var (
		request     models.ScreeningRequest
		requestID   uuid.UUID
		tenantID    uuid.UUID
		apartmentID uuid.UUID
		status      string

		approved       *bool
		outcome        *string
		meetsRentRule  *bool
		finalRiskLevel *string
		validUntil     *time.Time
		notes          *string
		completedAt    *time.Time
	)

	err := row.Scan(
		&requestID, &tenantID, &apartmentID, &request.MonthlyRent, &request.ConsentGiven, &request.ConsentTimestamp,
		&status, &request.Note, &request.CreatedAt, &request.UpdatedAt,
		&approved, &outcome, &meetsRentRule, &finalRiskLevel, &validUntil, &notes, &completedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, sentinel.ErrNotFound
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	request.ID = id.ScreeningID(requestID)
	request.TenantID = id.TenantID(tenantID)
	request.ApartmentID = id.ApartmentID(apartmentID)
	request.Status = models.ScreeningStatus(status)

	if outcome == nil {
		return &request, nil, nil
	}
	decision := models.ScreeningDecision{
		RequestID:        request.ID,
		Approved:         *approved,
		Outcome:          models.Outcome(*outcome),
		MeetsRentRule:    *meetsRentRule,
		FinalRiskLevel:   models.RiskLevel(*finalRiskLevel),
		CreditValidUntil: *validUntil,
		Notes:            *notes,
		CompletedAt:      *completedAt,
	}
	return &request, &decision, nil
}
