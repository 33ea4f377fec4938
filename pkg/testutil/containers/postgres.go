//go:build integration

// Package containers starts throwaway infrastructure for integration tests.
// All helpers are behind the integration build tag so unit test runs stay
// docker-free.
package containers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresContainer wraps a testcontainers Postgres instance with an open
// database/sql handle and the screening schema applied.
type PostgresContainer struct {
	Container *tcpostgres.PostgresContainer
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts a Postgres container and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sichrplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
		tcpostgres.WithSQLDriver("postgres"),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	db.SetConnMaxLifetime(time.Minute)

	pc := &PostgresContainer{Container: container, DSN: dsn, DB: db}
	if err := pc.applySchema(ctx); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return pc
}

// TruncateTables clears the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresContainer) applySchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS screening_requests (
	id                UUID PRIMARY KEY,
	tenant_id         UUID NOT NULL,
	apartment_id      UUID NOT NULL,
	monthly_rent      NUMERIC(10,2) NOT NULL,
	consent_given     BOOLEAN NOT NULL,
	consent_timestamp TIMESTAMPTZ NOT NULL,
	status            TEXT NOT NULL,
	note              TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_screening_requests_key
	ON screening_requests (tenant_id, apartment_id, created_at DESC);

CREATE TABLE IF NOT EXISTS screening_decisions (
	request_id       UUID PRIMARY KEY REFERENCES screening_requests (id),
	approved         BOOLEAN NOT NULL,
	outcome          TEXT NOT NULL,
	meets_rent_rule  BOOLEAN NOT NULL,
	final_risk_level TEXT NOT NULL,
	credit_valid_until TIMESTAMPTZ NOT NULL,
	notes            TEXT NOT NULL DEFAULT '',
	completed_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS screening_audit_log (
	id                 BIGSERIAL PRIMARY KEY,
	request_id         UUID NOT NULL,
	screening_type     TEXT NOT NULL,
	result_summary     JSONB NOT NULL,
	processing_time_ms BIGINT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL
);
`
	_, err := p.DB.ExecContext(ctx, schema)
	return err
}
