// Package content manages the flat per-note content files of a collection:
// one opaque rich-text delta file per note, plus an optional window-state
// sidecar. The orchestrator never parses content except during import and
// export.
//
// Ordering contract with the metadata store: on create the metadata row is
// written before the content file; on destroy the metadata row is deleted
// before the files. A crash in between leaves at worst an orphaned content
// file, which Reconcile collects on the next initialization — never a
// dangling metadata reference.
package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ContentExt is the extension of the rich-text delta file of a note.
	ContentExt = ".content"
	// StateExt is the extension of the optional window-state sidecar.
	StateExt = ".state"
)

// Store is the content file store of a single collection directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a Store rooted at the collection directory.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the collection directory.
func (s *Store) Dir() string {
	return s.dir
}

// ContentPath returns the content file path for a note id.
func (s *Store) ContentPath(id string) string {
	return filepath.Join(s.dir, id+ContentExt)
}

// StatePath returns the window-state sidecar path for a note id.
func (s *Store) StatePath(id string) string {
	return filepath.Join(s.dir, id+StateExt)
}

// Write persists a note's content atomically.
func (s *Store) Write(id string, data []byte) error {
	if err := writeFileAtomic(s.ContentPath(id), data, 0644); err != nil {
		return fmt.Errorf("failed to write content for note %s: %w", id, err)
	}
	return nil
}

// Read returns a note's content.
func (s *Store) Read(id string) ([]byte, error) {
	data, err := os.ReadFile(s.ContentPath(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read content for note %s: %w", id, err)
	}
	return data, nil
}

// Exists reports whether a content file is present for the note id.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.ContentPath(id))
	return err == nil
}

// Delete removes a note's content file and, when present, its state
// sidecar. The sidecar removal is best-effort.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.ContentPath(id)); err != nil {
		return fmt.Errorf("failed to remove content for note %s: %w", id, err)
	}

	statePath := s.StatePath(id)
	if _, err := os.Stat(statePath); err == nil {
		if err := os.Remove(statePath); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove state sidecar", "note", id, "error", err)
		}
	}
	return nil
}

// List returns the note ids that have a content file in the collection
// directory.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ContentExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ContentExt))
	}
	return ids, nil
}

// Reconcile removes content files whose id has no metadata row. It returns
// the removed ids; per-file removal failures are logged and skipped.
func (s *Store) Reconcile(valid map[string]bool) ([]string, error) {
	ids, err := s.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, id := range ids {
		if valid[id] {
			continue
		}
		if err := s.Delete(id); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to remove orphaned content file", "note", id, "error", err)
			}
			continue
		}
		if s.logger != nil {
			s.logger.Info("removed orphaned content file", "note", id)
		}
		removed = append(removed, id)
	}
	return removed, nil
}
