package collection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notewell/notewell/pkg/content"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

// Initialize resolves and opens the active collection. It is a no-op when
// already initialized. Concurrent callers share a single in-flight
// initialization: the first caller runs it, the rest wait on its result.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case stateInitialized:
		s.mu.Unlock()
		return nil
	case stateInitializing:
		done := s.initDone
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
		err := s.initErr
		s.mu.Unlock()
		return err
	}
	s.state = stateInitializing
	s.initDone = make(chan struct{})
	s.mu.Unlock()

	err := s.initialize(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = stateUninitialized
	} else {
		s.state = stateInitialized
	}
	s.initErr = err
	close(s.initDone)
	s.mu.Unlock()

	return err
}

func (s *Service) initialize(ctx context.Context) error {
	storageDir := s.settings.StorageDirectory()
	if storageDir == "" {
		return fmt.Errorf("storage directory is not configured")
	}
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	active := s.settings.ActiveCollection()
	dir := collectionPath(storageDir, active)

	if active == "" || !insideRoot(storageDir, dir) || !dirExists(dir) {
		// No valid active collection. Fall back to the first existing one,
		// or create a default collection.
		collections, err := s.Collections()
		if err != nil {
			return err
		}
		if len(collections) > 0 {
			active = collections[0]
		} else {
			active = DefaultCollection
		}

		dir = collectionPath(storageDir, active)
		if err := s.settings.SetActiveCollection(active); err != nil {
			return err
		}
		if !dirExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create collection directory: %w", err)
			}
		}
	}

	dbPath := filepath.Join(dir, active+".db")
	if err := s.store.Initialize(dbPath); err != nil {
		return fmt.Errorf("failed to initialize metadata store: %w", err)
	}

	cs := content.NewStore(dir, s.logger)

	// Startup reconciliation: drop content files whose metadata row is gone.
	notes, err := s.store.GetNotes()
	if err != nil {
		return fmt.Errorf("failed to list notes for reconciliation: %w", err)
	}
	valid := make(map[string]bool, len(notes))
	for _, n := range notes {
		valid[n.ID] = true
	}
	if _, err := cs.Reconcile(valid); err != nil {
		s.logger.Warn("content reconciliation failed", "error", err)
	}

	s.mu.Lock()
	s.content = cs
	s.dbPath = dbPath
	s.mu.Unlock()

	// Only an initialized service processes relay requests.
	s.listen()

	s.logger.Info("initialized collection", "collection", active, "db", dbPath)
	return nil
}

// Invalidate drops the current initialization. The next operation must
// reinitialize first.
func (s *Service) Invalidate() {
	s.mu.Lock()
	if s.state == stateInitialized {
		s.state = stateUninitialized
	}
	s.mu.Unlock()
}

func (s *Service) invalidateAndNotify() {
	s.Invalidate()
	s.relay.Publish(relay.CollectionsChanged{})
}

// Collections lists the collection directories under the storage root,
// sorted by name.
func (s *Service) Collections() ([]string, error) {
	storageDir := s.settings.StorageDirectory()
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var collections []string
	for _, e := range entries {
		if e.IsDir() {
			collections = append(collections, e.Name())
		}
	}
	return collections, nil
}

// ActiveCollection returns the active collection name from the settings.
func (s *Service) ActiveCollection() string {
	return s.settings.ActiveCollection()
}

// SetStorageDirectory creates the storage root under parentDir and saves it
// in the settings.
func (s *Service) SetStorageDirectory(parentDir string) error {
	storageDir := filepath.Join(parentDir, "collections")
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := s.settings.SetStorageDirectory(storageDir); err != nil {
		return err
	}
	s.logger.Info("storage directory saved", "dir", storageDir)
	s.Invalidate()
	return nil
}

// AddCollection creates a collection directory and activates it.
func (s *Service) AddCollection(name string) core.Operation {
	if name == "" {
		s.logger.Error("collection name is empty")
		return core.Error
	}

	sanitized := sanitizeName(name)
	if sanitized == "" {
		s.logger.Error("collection name is empty after sanitizing", "name", name)
		return core.Error
	}

	exists, err := s.collectionExists(sanitized)
	if err != nil {
		s.logger.Error("could not check collections", "error", err)
		return core.Error
	}
	if exists {
		s.logger.Info("not adding collection, it already exists", "collection", sanitized)
		return core.Duplicate
	}

	if err := os.MkdirAll(collectionPath(s.settings.StorageDirectory(), sanitized), 0755); err != nil {
		s.logger.Error("could not add collection", "collection", sanitized, "error", err)
		return core.Error
	}
	if err := s.settings.SetActiveCollection(sanitized); err != nil {
		s.logger.Error("could not activate collection", "collection", sanitized, "error", err)
		return core.Error
	}

	s.logger.Info("added collection", "collection", sanitized)
	s.invalidateAndNotify()
	return core.Success
}

// RenameCollection renames a collection's database file and directory and
// activates the new name. The database file moves first: its target path is
// derived from the old directory.
func (s *Service) RenameCollection(initial, final string) core.Operation {
	if final == "" {
		s.logger.Error("final collection name is empty")
		return core.Error
	}
	if strings.EqualFold(initial, final) {
		return core.Aborted
	}

	exists, err := s.collectionExists(final)
	if err != nil {
		s.logger.Error("could not check collections", "error", err)
		return core.Error
	}
	if exists {
		return core.Duplicate
	}

	storageDir := s.settings.StorageDirectory()
	oldDir := collectionPath(storageDir, initial)

	oldDB := filepath.Join(oldDir, initial+".db")
	newDB := filepath.Join(oldDir, final+".db")
	if _, err := os.Stat(oldDB); err == nil {
		if err := os.Rename(oldDB, newDB); err != nil {
			s.logger.Error("could not rename collection database", "collection", initial, "error", err)
			return core.Error
		}
	}

	if err := os.Rename(oldDir, collectionPath(storageDir, final)); err != nil {
		s.logger.Error("could not rename collection directory", "collection", initial, "error", err)
		return core.Error
	}
	if err := s.settings.SetActiveCollection(final); err != nil {
		s.logger.Error("could not activate renamed collection", "collection", final, "error", err)
		return core.Error
	}

	s.invalidateAndNotify()
	return core.Success
}

// DeleteCollection removes a collection directory and reassigns the active
// collection. Removal is best-effort: failures are logged, the change is
// signalled regardless.
func (s *Service) DeleteCollection(name string) core.Operation {
	storageDir := s.settings.StorageDirectory()
	if err := os.RemoveAll(collectionPath(storageDir, name)); err != nil {
		s.logger.Error("could not delete collection", "collection", name, "error", err)
	}

	collections, err := s.Collections()
	if err != nil {
		s.logger.Error("could not list remaining collections", "error", err)
	}

	active := ""
	if len(collections) > 0 {
		active = collections[0]
	}
	if err := s.settings.SetActiveCollection(active); err != nil {
		s.logger.Error("could not update active collection", "error", err)
	}

	s.invalidateAndNotify()
	return core.Success
}

// ActivateCollection switches the active collection. Purely a settings
// update plus invalidation; it does not touch disk.
func (s *Service) ActivateCollection(name string) core.Operation {
	if err := s.settings.SetActiveCollection(name); err != nil {
		s.logger.Error("could not activate collection", "collection", name, "error", err)
		return core.Error
	}
	s.invalidateAndNotify()
	return core.Success
}

func (s *Service) collectionExists(name string) (bool, error) {
	collections, err := s.Collections()
	if err != nil {
		return false, err
	}
	for _, c := range collections {
		if strings.EqualFold(c, name) {
			return true, nil
		}
	}
	return false, nil
}

func collectionPath(storageDir, name string) string {
	return filepath.Join(storageDir, name)
}

func insideRoot(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// sanitizeName strips characters that are illegal in file names on the
// host filesystems.
func sanitizeName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(sanitized)
}
