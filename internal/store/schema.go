package store

import (
	"context"
	"fmt"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS applications (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	company_name        TEXT NOT NULL,
	job_title           TEXT NOT NULL,
	job_url             TEXT NOT NULL UNIQUE,
	job_description     TEXT NOT NULL DEFAULT '',
	salary              TEXT NOT NULL DEFAULT '',
	location            TEXT NOT NULL DEFAULT '',
	job_board           TEXT NOT NULL DEFAULT '',
	posted_date         TEXT NOT NULL DEFAULT '',
	contact_email       TEXT NOT NULL DEFAULT '',
	contact_phone       TEXT NOT NULL DEFAULT '',
	company_website     TEXT NOT NULL DEFAULT '',
	contact_person      TEXT NOT NULL DEFAULT '',
	date_applied        TIMESTAMP,
	application_method  TEXT NOT NULL DEFAULT 'email',
	status              TEXT NOT NULL DEFAULT 'pending',
	date_contacted      TIMESTAMP,
	response_type       TEXT NOT NULL DEFAULT '',
	response_content    TEXT NOT NULL DEFAULT '',
	interview_scheduled INTEGER NOT NULL DEFAULT 0,
	interview_date      TIMESTAMP,
	interview_time      TEXT NOT NULL DEFAULT '',
	interview_type      TEXT NOT NULL DEFAULT '',
	interview_location  TEXT NOT NULL DEFAULT '',
	notes               TEXT NOT NULL DEFAULT '',
	feedback            TEXT NOT NULL DEFAULT '',
	rejection_reason    TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMP NOT NULL,
	last_updated        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
CREATE INDEX IF NOT EXISTS idx_applications_date_applied ON applications(date_applied);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS applications (
	id                  BIGSERIAL PRIMARY KEY,
	company_name        TEXT NOT NULL,
	job_title           TEXT NOT NULL,
	job_url             TEXT NOT NULL UNIQUE,
	job_description     TEXT NOT NULL DEFAULT '',
	salary              TEXT NOT NULL DEFAULT '',
	location            TEXT NOT NULL DEFAULT '',
	job_board           TEXT NOT NULL DEFAULT '',
	posted_date         TEXT NOT NULL DEFAULT '',
	contact_email       TEXT NOT NULL DEFAULT '',
	contact_phone       TEXT NOT NULL DEFAULT '',
	company_website     TEXT NOT NULL DEFAULT '',
	contact_person      TEXT NOT NULL DEFAULT '',
	date_applied        TIMESTAMPTZ,
	application_method  TEXT NOT NULL DEFAULT 'email',
	status              TEXT NOT NULL DEFAULT 'pending',
	date_contacted      TIMESTAMPTZ,
	response_type       TEXT NOT NULL DEFAULT '',
	response_content    TEXT NOT NULL DEFAULT '',
	interview_scheduled BOOLEAN NOT NULL DEFAULT FALSE,
	interview_date      TIMESTAMPTZ,
	interview_time      TEXT NOT NULL DEFAULT '',
	interview_type      TEXT NOT NULL DEFAULT '',
	interview_location  TEXT NOT NULL DEFAULT '',
	notes               TEXT NOT NULL DEFAULT '',
	feedback            TEXT NOT NULL DEFAULT '',
	rejection_reason    TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL,
	last_updated        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);
CREATE INDEX IF NOT EXISTS idx_applications_date_applied ON applications(date_applied);
`

// Migrate creates the applications table and its indexes when missing.
func (s *Store) Migrate(ctx context.Context) error {
	schema := schemaSQLite
	if s.driver == DriverPostgres {
		schema = schemaPostgres
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Reset drops every record and recreates the schema. This is the only way
// records are ever deleted.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS applications`); err != nil {
		return fmt.Errorf("failed to drop applications table: %w", err)
	}
	return s.Migrate(ctx)
}
