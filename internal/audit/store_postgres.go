package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	id "sichrplace/pkg/domain"
)

// PostgresStore persists audit entries in the screening_audit_log table.
// The table is append-only; there is no update or delete path.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	summary, err := json.Marshal(entry.ResultSummary)
	if err != nil {
		return fmt.Errorf("marshal audit summary: %w", err)
	}

	query := `
		INSERT INTO screening_audit_log (request_id, screening_type, result_summary, processing_time_ms, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(entry.RequestID),
		entry.ScreeningType,
		summary,
		entry.ProcessingTimeMs,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRequest(ctx context.Context, requestID id.ScreeningID) ([]Entry, error) {
	query := `
		SELECT request_id, screening_type, result_summary, processing_time_ms, created_at
		FROM screening_audit_log
		WHERE request_id = $1
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(requestID))
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			requestRaw uuid.UUID
			summaryRaw []byte
		)
		if err := rows.Scan(&requestRaw, &entry.ScreeningType, &summaryRaw, &entry.ProcessingTimeMs, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.RequestID = id.ScreeningID(requestRaw)
		if err := json.Unmarshal(summaryRaw, &entry.ResultSummary); err != nil {
			return nil, fmt.Errorf("unmarshal audit summary: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
