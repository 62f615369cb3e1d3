// Package store implements the SQLite entity store for AppLog.
// It owns the schema for job applications and note templates, enforces the
// unique constraint on normalized job URLs, and keeps every mutation inside
// a single transaction.
package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes shape.
const schemaVersion = 1

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("store is closed")

// Info describes the store identity row seeded on first open.
type Info struct {
	StoreID       string
	SchemaVersion int
	CreatedAt     time.Time
}

// Store is a SQLite-backed entity store. Reads may run concurrently;
// writers are serialized with the mutex.
type Store struct {
	mu     sync.RWMutex
	closed bool
	path   string
	db     *sql.DB
	info   Info
	logger zerolog.Logger
}

// Option configures a Store during Open.
type Option func(*Store)

// WithLogger attaches a logger. Without it the store logs nowhere.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens or creates the SQLite database at path (":memory:" is accepted
// for throwaway stores), applies the schema, and seeds the store_info row on
// first run. The parent directory is created if needed.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	s.db = db
	if err := s.ensureInfo(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug().
		Str("path", path).
		Str("store_id", s.info.StoreID).
		Int("schema_version", s.info.SchemaVersion).
		Msg("store opened")

	return s, nil
}

// Close releases the database handle. Close is idempotent; every operation
// after it returns ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.logger.Debug().Str("path", s.path).Msg("store closed")
	return nil
}

// Info returns the identity row seeded on first open.
func (s *Store) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// ensureInfo reads the store_info row, inserting it on first open.
func (s *Store) ensureInfo() error {
	var (
		storeID   string
		version   int
		createdAt string
	)
	err := s.db.QueryRow(
		"SELECT store_id, schema_version, created_at FROM store_info LIMIT 1",
	).Scan(&storeID, &version, &createdAt)

	switch {
	case err == sql.ErrNoRows:
		now := time.Now().UTC()
		storeID = generateUUID()
		version = schemaVersion
		createdAt = formatTime(now)
		if _, err := s.db.Exec(
			"INSERT INTO store_info (store_id, schema_version, created_at) VALUES (?, ?, ?)",
			storeID, version, createdAt,
		); err != nil {
			return fmt.Errorf("seeding store info: %w", err)
		}
	case err != nil:
		return fmt.Errorf("reading store info: %w", err)
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return fmt.Errorf("parsing store created_at: %w", err)
	}
	s.info = Info{StoreID: storeID, SchemaVersion: version, CreatedAt: created}
	return nil
}

// generateUUID generates a UUID v7 for store and snapshot identities.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// formatTime renders a timestamp for TEXT column storage. Everything is
// stored in UTC with nanosecond precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime reads a timestamp written by formatTime.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
