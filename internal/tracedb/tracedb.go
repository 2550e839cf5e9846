// Package tracedb optionally persists a run's recompilation history: every
// time a Put instruction invalidates the parsed graph, the triggering
// position and the seed state execution resumed from are recorded. This is
// off by default — the interpreter itself has no persisted state — and
// exists purely as an opt-in observability aid for diagnosing
// self-modifying programs across runs.
package tracedb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store persists recompilation events to a SQL database.
type Store struct {
	driver string
	db     *sql.DB
}

// Open connects to a trace database. driver is one of "sqlite", "postgres",
// or "mysql"; dsn is the driver-specific data source name.
func Open(driver, dsn string) (*Store, error) {
	driverName, err := resolveDriver(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("tracedb: failed to open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracedb: failed to ping %s: %w", driver, err)
	}

	store := &Store{driver: driverName, db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func resolveDriver(driver string) (string, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return "sqlite", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("tracedb: unsupported driver %q", driver)
	}
}

func (s *Store) createSchema() error {
	// Only SQLite fills an INTEGER PRIMARY KEY by itself.
	idColumn := "id INTEGER PRIMARY KEY"
	switch s.driver {
	case "postgres":
		idColumn = "id SERIAL PRIMARY KEY"
	case "mysql":
		idColumn = "id INTEGER AUTO_INCREMENT PRIMARY KEY"
	}
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS recompilations (
			` + idColumn + `,
			source        TEXT NOT NULL,
			write_x       INTEGER NOT NULL,
			write_y       INTEGER NOT NULL,
			seed_x        INTEGER NOT NULL,
			seed_y        INTEGER NOT NULL,
			seed_mode     TEXT NOT NULL,
			seed_direction TEXT NOT NULL,
			occurred_at   TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("tracedb: failed to create schema: %w", err)
	}
	return nil
}

// Event describes one recompilation.
type Event struct {
	Source        string
	WriteX, WriteY int
	SeedX, SeedY  int
	SeedMode      string
	SeedDirection string
	OccurredAt    time.Time
}

// Record inserts a recompilation event.
func (s *Store) Record(e Event) error {
	query := s.rebind(`INSERT INTO recompilations
		(source, write_x, write_y, seed_x, seed_y, seed_mode, seed_direction, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.Exec(
		query,
		e.Source, e.WriteX, e.WriteY, e.SeedX, e.SeedY, e.SeedMode, e.SeedDirection, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("tracedb: failed to record event: %w", err)
	}
	return nil
}

// Count returns the number of recompilation events recorded for a source
// identifier (typically the source file path).
func (s *Store) Count(source string) (int, error) {
	query := s.rebind(`SELECT COUNT(*) FROM recompilations WHERE source = ?`)
	var count int
	err := s.db.QueryRow(query, source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("tracedb: failed to count events: %w", err)
	}
	return count, nil
}

// rebind rewrites "?" placeholders to "$1", "$2", ... for postgres, which
// doesn't understand the "?" style the other two drivers accept.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
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

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}
