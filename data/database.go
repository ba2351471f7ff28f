package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// DefaultDbName is the database file used when no path is configured.
const DefaultDbName = "InspetorRodoviario.db"

// Store is the handle to the local photo database. It is opened once at
// startup and shared by every component that needs persistence.
// Same-table operations are serialized by SQLite; the store adds no locking.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps an already connected database. The schema is not applied.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to the SQLite file at path, creating parent directories
// and applying the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultDbName
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	log.WithField("path", path).Info("opening photo database")

	db, err := sqlx.Connect("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to photo database: %w", err)
	}
	// SQLite allows one writer; a single connection keeps writes ordered.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping photo database: %w", err)
	}

	s := NewStore(db)
	if err = s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("photo database schema applied")
	return s, nil
}

// Migrate applies the schema. It is safe to call on an existing database.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(GetSchema()); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection pool.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
