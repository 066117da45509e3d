// Package store implements the metadata store contract on top of an
// embedded SQLite database, one database file per collection.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/notewell/notewell/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notebooks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notebooks_name ON notebooks(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	text TEXT NOT NULL DEFAULT '',
	notebook_id TEXT NOT NULL DEFAULT '',
	is_marked INTEGER NOT NULL DEFAULT 0,
	creation_date INTEGER NOT NULL,
	modification_date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_notebook ON notes(notebook_id);
CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);
`

// Store is the SQLite-backed metadata store.
type Store struct {
	db   *sql.DB
	path string
}

// New creates an unopened Store. Call Initialize with the database file
// path before use.
func New() *Store {
	return &Store{}
}

// Initialize opens or creates the database file and ensures the schema.
// A store that is already open is closed first, so switching collections
// never leaves the previous database file held open.
func (s *Store) Initialize(dbPath string) error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close previous database: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to init schema: %w", err)
	}

	s.db = db
	s.path = dbPath
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Path returns the database file path, empty until Initialize.
func (s *Store) Path() string {
	return s.path
}

// escapeLike escapes LIKE wildcards so user titles scan as literals.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

var _ core.Store = (*Store)(nil)
