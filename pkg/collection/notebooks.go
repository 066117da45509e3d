package collection

import (
	"errors"

	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

// GetNotebooks returns the notebooks of the active collection: the
// synthetic defaults followed by the persisted ones.
func (s *Service) GetNotebooks(includeAllNotes bool) []core.Notebook {
	var notebooks []core.Notebook

	if includeAllNotes {
		notebooks = append(notebooks, core.AllNotesNotebook(s.strings.AllNotes))
	}
	notebooks = append(notebooks, core.UnfiledNotesNotebook(s.strings.UnfiledNotes))

	persisted, err := s.store.GetNotebooks()
	if err != nil {
		s.logger.Error("could not get notebooks", "error", err)
		return notebooks
	}
	return append(notebooks, persisted...)
}

// NotebookName resolves a notebook id to its name.
func (s *Service) NotebookName(notebookID string) string {
	nb, err := s.store.GetNotebookByID(notebookID)
	if err != nil {
		return ""
	}
	return nb.Name
}

// AddNotebook creates a notebook. Names must be unique case-insensitively
// among the persisted notebooks of the collection.
func (s *Service) AddNotebook(name string) core.Operation {
	if name == "" {
		s.logger.Error("notebook name is empty")
		return core.Error
	}

	exists, err := s.notebookExists(name)
	if err != nil {
		s.logger.Error("could not check notebooks", "error", err)
		return core.Error
	}
	if exists {
		s.logger.Info("not adding notebook, it already exists", "notebook", name)
		return core.Duplicate
	}

	if _, err := s.store.AddNotebook(name); err != nil {
		s.logger.Error("could not add notebook", "notebook", name, "error", err)
		return core.Error
	}

	s.logger.Info("added notebook", "notebook", name)
	s.relay.Publish(relay.NotebooksChanged{})
	return core.Success
}

// RenameNotebook renames a notebook, guarding against collisions.
func (s *Service) RenameNotebook(notebookID, newName string) core.Operation {
	if newName == "" {
		s.logger.Error("new notebook name is empty")
		return core.Error
	}

	existing, err := s.store.GetNotebookByName(newName)
	switch {
	case err == nil && existing.ID != notebookID:
		return core.Duplicate
	case err != nil && !errors.Is(err, core.ErrNotFound):
		s.logger.Error("could not check notebooks", "error", err)
		return core.Error
	}

	nb, err := s.store.GetNotebookByID(notebookID)
	if err != nil {
		s.logger.Error("could not get notebook", "notebook", notebookID, "error", err)
		return core.Error
	}
	if nb.Name == newName {
		return core.Aborted
	}

	nb.Name = newName
	if err := s.store.UpdateNotebook(nb); err != nil {
		s.logger.Error("could not rename notebook", "notebook", notebookID, "error", err)
		return core.Error
	}

	s.relay.Publish(relay.NotebooksChanged{})
	return core.Success
}

// DeleteNotebooks removes notebooks one by one. A per-id failure is
// recorded and the remaining ids are still processed; the change is
// signalled once at the end regardless.
func (s *Service) DeleteNotebooks(notebookIDs []string) core.BatchResult {
	var batch core.BatchResult

	for _, id := range notebookIDs {
		if err := s.store.DeleteNotebook(id); err != nil {
			s.logger.Error("could not delete notebook", "notebook", id, "error", err)
			batch.Fail(id, err)
			continue
		}
		batch.Succeeded++
	}

	s.relay.Publish(relay.NotebooksChanged{})
	return batch
}

func (s *Service) notebookExists(name string) (bool, error) {
	_, err := s.store.GetNotebookByName(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	return false, err
}
