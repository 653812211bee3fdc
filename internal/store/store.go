// Package store provides relational storage for application records.
//
// The default backend is a local SQLite file, matching the tool's
// single-user usage; a postgres:// DATABASE_URL switches the same store
// onto PostgreSQL via the pgx stdlib driver.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"
	_ "modernc.org/sqlite"             // database/sql driver "sqlite"
)

// Driver names as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store wraps the applications table behind a database/sql handle.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database named by databaseURL and verifies the
// connection. Supported forms: sqlite://file.db, a bare file path, or a
// postgres:// / postgresql:// DSN.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	driver, dsn, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// New wraps an existing handle. Used by tests that inject their own
// connection.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// parseDatabaseURL maps a DATABASE_URL onto a (driver, dsn) pair.
func parseDatabaseURL(databaseURL string) (driver, dsn string, err error) {
	raw := strings.TrimSpace(databaseURL)
	if raw == "" {
		return "", "", fmt.Errorf("database URL is empty")
	}

	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return DriverPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse database URL %s: %w", raw, err)
		}
		// sqlite://file.db parses the file into Host, sqlite:///abs/path into Path
		path := u.Host + u.Path
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL %s names no file", raw)
		}
		return DriverSQLite, path, nil
	case strings.Contains(raw, "://"):
		return "", "", fmt.Errorf("unsupported database URL scheme in %s", raw)
	default:
		// bare path, treat as a sqlite file
		return DriverSQLite, raw, nil
	}
}

// rebind rewrites ? placeholders into $1..$N for the postgres driver.
// Queries in this package are written with ? so both backends share them.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
