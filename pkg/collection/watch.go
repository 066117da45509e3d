package collection

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/notewell/notewell/pkg/relay"
)

// storageWatcher watches the storage root and signals collection changes
// made outside the application, such as a sync client adding or removing a
// collection directory.
type storageWatcher struct {
	*worker.BaseWorker
	dir     string
	relay   *relay.Relay
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
}

func newStorageWatcher(dir string, r *relay.Relay, logger *slog.Logger) *storageWatcher {
	return &storageWatcher{
		BaseWorker: worker.NewBaseWorker("storage-watcher"),
		dir:        dir,
		relay:      r,
		logger:     logger,
	}
}

func (w *storageWatcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("storage watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.watcher = watcher

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *storageWatcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *storageWatcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *storageWatcher) run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Only direct children of the storage root are collections.
			if filepath.Dir(event.Name) != w.dir {
				continue
			}
			w.logger.Debug("storage root changed", "name", event.Name, "op", event.Op.String())
			w.relay.Publish(relay.CollectionsChanged{})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("storage watcher error", "error", err)
		}
	}
}

// WatchStorage starts watching the storage root for external collection
// changes. It replaces any running watcher.
func (s *Service) WatchStorage(ctx context.Context) error {
	storageDir := s.settings.StorageDirectory()
	if !dirExists(storageDir) {
		return fmt.Errorf("storage directory does not exist: %s", storageDir)
	}

	s.mu.Lock()
	old := s.watcher
	s.mu.Unlock()
	if old != nil {
		if err := old.Stop(ctx); err != nil {
			s.logger.Warn("could not stop storage watcher", "error", err)
		}
	}

	w := newStorageWatcher(storageDir, s.relay, s.logger)
	if err := w.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// StopWatching stops the storage watcher if one is running.
func (s *Service) StopWatching(ctx context.Context) error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Stop(ctx)
}
