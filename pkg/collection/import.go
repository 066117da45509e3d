package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/notewell/notewell/pkg/content"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

const (
	legacyNotebooksFile = "Notebooks.json"
	legacyNotesFile     = "Notes.json"

	legacyDateLayout = "2006-01-02 15:04:05"
)

type legacyNotebook struct {
	Name string `json:"Name"`
}

type legacyNote struct {
	Title            string `json:"Title"`
	Text             string `json:"Text"`
	Notebook         string `json:"Notebook"`
	CreationDate     string `json:"CreationDate"`
	ModificationDate string `json:"ModificationDate"`
	IsMarked         bool   `json:"IsMarked"`
}

// deltaDocument is the minimal rich-text document written for imported
// plain-text notes: a single insert operation wrapping the whole text.
type deltaDocument struct {
	Ops []deltaOp `json:"ops"`
}

type deltaOp struct {
	Insert string `json:"insert"`
}

func plainTextDelta(text string) ([]byte, error) {
	return json.Marshal(deltaDocument{Ops: []deltaOp{{Insert: text}}})
}

// ImportLegacy migrates the old on-disk export format from dir into the
// active collection. Both files are optional; per-item failures are logged
// and skipped. The result is Success only when every phase applied cleanly.
func (s *Service) ImportLegacy(dir string) core.Operation {
	notebooksOK := s.importLegacyNotebooks(filepath.Join(dir, legacyNotebooksFile))
	notesOK := s.importLegacyNotes(filepath.Join(dir, legacyNotesFile))

	s.relay.Publish(relay.NotebooksChanged{})
	s.relay.Publish(relay.NotesChanged{})

	if !notebooksOK || !notesOK {
		return core.Error
	}
	return core.Success
}

func (s *Service) importLegacyNotebooks(path string) bool {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	if err != nil {
		s.logger.Error("could not read legacy notebooks", "path", path, "error", err)
		return false
	}

	var notebooks []legacyNotebook
	if err := json.Unmarshal(data, &notebooks); err != nil {
		s.logger.Error("could not parse legacy notebooks", "path", path, "error", err)
		return false
	}

	ok := true
	for _, nb := range notebooks {
		exists, err := s.notebookExists(nb.Name)
		if err != nil {
			s.logger.Error("could not check notebook", "name", nb.Name, "error", err)
			ok = false
			continue
		}
		if exists {
			s.logger.Info("skipping existing notebook", "name", nb.Name)
			continue
		}
		if _, err := s.store.AddNotebook(nb.Name); err != nil {
			s.logger.Error("could not import notebook", "name", nb.Name, "error", err)
			ok = false
		}
	}
	return ok
}

func (s *Service) importLegacyNotes(path string) bool {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return true
	}
	if err != nil {
		s.logger.Error("could not read legacy notes", "path", path, "error", err)
		return false
	}

	var notes []legacyNote
	if err := json.Unmarshal(data, &notes); err != nil {
		s.logger.Error("could not parse legacy notes", "path", path, "error", err)
		return false
	}

	ok := true
	for _, n := range notes {
		if err := s.importLegacyNote(n); err != nil {
			s.logger.Error("could not import note", "title", n.Title, "error", err)
			ok = false
		}
	}
	return ok
}

func (s *Service) importLegacyNote(legacy legacyNote) error {
	notebookID := ""
	if legacy.Notebook != "" {
		nb, err := s.store.GetNotebookByName(legacy.Notebook)
		if err == nil {
			notebookID = nb.ID
		} else if !errors.Is(err, core.ErrNotFound) {
			return err
		}
	}

	title, err := s.uniqueNoteTitle(legacy.Title)
	if err != nil {
		return err
	}

	id, err := s.store.AddNote(title, notebookID)
	if err != nil {
		return err
	}

	if err := s.finishLegacyNote(id, legacy); err != nil {
		if delErr := s.store.DeleteNote(id); delErr != nil {
			s.logger.Error("rollback of imported note failed", "note", id, "error", delErr)
		}
		return err
	}
	return nil
}

func (s *Service) finishLegacyNote(id string, legacy legacyNote) error {
	note, err := s.store.GetNoteByID(id)
	if err != nil {
		return err
	}

	note.Text = legacy.Text
	note.IsMarked = legacy.IsMarked
	if ts, err := parseLegacyDate(legacy.CreationDate); err == nil {
		note.CreationDate = ts
	}
	if ts, err := parseLegacyDate(legacy.ModificationDate); err == nil {
		note.ModificationDate = ts
	}
	if err := s.store.UpdateNoteWithoutDate(note); err != nil {
		return err
	}

	delta, err := plainTextDelta(legacy.Text)
	if err != nil {
		return err
	}
	files, err := s.contentStore()
	if err != nil {
		return err
	}
	return files.Write(id, delta)
}

func parseLegacyDate(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("empty date")
	}
	t, err := time.ParseInLocation(legacyDateLayout, value, time.Local)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ImportNoteFiles imports previously exported note documents into the
// given notebook (empty means unfiled). Imported titles get an "(imported)"
// suffix and are then uniquified with the rename variant; a failed item
// rolls back its own row and does not stop the batch.
func (s *Service) ImportNoteFiles(paths []string, notebookID string) core.BatchResult {
	var batch core.BatchResult

	for _, path := range paths {
		if err := s.importNoteFile(path, notebookID); err != nil {
			s.logger.Error("could not import note file", "path", path, "error", err)
			batch.Fail(path, err)
			continue
		}
		batch.Succeeded++
	}

	s.relay.Publish(relay.NotesChanged{})
	return batch
}

func (s *Service) importNoteFile(path, notebookID string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	proposed := fmt.Sprintf("%s (%s)", doc.Title, s.strings.Imported)
	title, err := s.uniqueNoteTitle(proposed)
	if err != nil {
		return err
	}

	if notebookID == core.AllNotesID || notebookID == core.UnfiledNotesID {
		notebookID = ""
	}

	id, err := s.store.AddNote(title, notebookID)
	if err != nil {
		return err
	}

	note, err := s.store.GetNoteByID(id)
	if err == nil {
		note.Text = doc.Text
		err = s.store.UpdateNote(note)
	}
	if err == nil {
		var files *content.Store
		if files, err = s.contentStore(); err == nil {
			err = files.Write(id, []byte(doc.Content))
		}
	}
	if err != nil {
		if delErr := s.store.DeleteNote(id); delErr != nil {
			s.logger.Error("rollback of imported note failed", "note", id, "error", delErr)
		}
		return err
	}
	return nil
}
