package collection

import (
	"strings"

	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

// AddNote creates a note with a uniquified title and an empty content file.
// The metadata row is written first; if the content file cannot be written
// the row is rolled back so the two stores stay consistent.
func (s *Service) AddNote(baseTitle, notebookID string) core.NoteOperation {
	files, err := s.contentStore()
	if err != nil {
		s.logger.Error("could not add note", "title", baseTitle, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}

	// A default notebook selection means the note is added unfiled.
	if notebookID == core.AllNotesID || notebookID == core.UnfiledNotesID {
		notebookID = ""
	}

	title, err := s.uniqueNewNoteTitle(baseTitle)
	if err != nil {
		s.logger.Error("could not derive a unique title", "base", baseTitle, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}

	id, err := s.store.AddNote(title, notebookID)
	if err != nil {
		s.logger.Error("could not add note", "title", title, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}

	if err := files.Write(id, []byte{}); err != nil {
		s.logger.Error("could not create content file, rolling back", "note", id, "error", err)
		if delErr := s.store.DeleteNote(id); delErr != nil {
			s.logger.Error("rollback of note row failed", "note", id, "error", delErr)
		}
		return core.NoteOperation{Operation: core.Error}
	}

	s.relay.Publish(relay.NotesChanged{})
	return core.NoteOperation{Operation: core.Success, NoteID: id, Title: title}
}

// DeleteNotes removes notes one by one: metadata row first, then the
// content file and state sidecar. Per-id failures do not stop the batch.
func (s *Service) DeleteNotes(noteIDs []string) core.BatchResult {
	var batch core.BatchResult

	files, err := s.contentStore()
	if err != nil {
		for _, id := range noteIDs {
			batch.Fail(id, err)
		}
		return batch
	}

	for _, id := range noteIDs {
		if err := s.store.DeleteNote(id); err != nil {
			s.logger.Error("could not delete note", "note", id, "error", err)
			batch.Fail(id, err)
			continue
		}
		if err := files.Delete(id); err != nil {
			s.logger.Error("could not delete note files", "note", id, "error", err)
			batch.Fail(id, err)
			continue
		}
		batch.Succeeded++
	}

	s.relay.Publish(relay.NotesChanged{})
	return batch
}

// GetNote returns a note by id.
func (s *Service) GetNote(noteID string) (core.Note, error) {
	return s.store.GetNoteByID(noteID)
}

// GetNotebook resolves the notebook of a note, falling back to the
// synthetic Unfiled notebook when the note has none or the reference is
// stale.
func (s *Service) GetNotebook(noteID string) core.Notebook {
	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		return core.UnfiledNotesNotebook(s.strings.UnfiledNotes)
	}
	if note.NotebookID == "" {
		return core.UnfiledNotesNotebook(s.strings.UnfiledNotes)
	}
	nb, err := s.store.GetNotebookByID(note.NotebookID)
	if err != nil {
		return core.UnfiledNotesNotebook(s.strings.UnfiledNotes)
	}
	return nb
}

// GetNoteDetails answers a note window's details request.
func (s *Service) GetNoteDetails(noteID string) core.NoteDetails {
	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		s.logger.Error("could not get note details", "note", noteID, "error", err)
		return core.NoteDetails{NotebookName: s.strings.UnfiledNotes}
	}
	return core.NoteDetails{
		Title:        note.Title,
		NotebookName: s.GetNotebook(noteID).Name,
		IsMarked:     note.IsMarked,
	}
}

// SetNoteTitle renames a note. The final title is trimmed; an empty result
// is Blank, an unchanged one Aborted, a title held by another note
// Duplicate. Otherwise the rename-variant uniquifier resolves the title.
func (s *Service) SetNoteTitle(noteID, initialTitle, finalTitle string) core.NoteOperation {
	trimmed := strings.TrimSpace(finalTitle)
	if trimmed == "" {
		return core.NoteOperation{Operation: core.Blank}
	}
	if initialTitle == trimmed {
		return core.NoteOperation{Operation: core.Aborted}
	}

	if other, err := s.store.GetNoteByTitle(trimmed); err == nil && other.ID != noteID {
		return core.NoteOperation{Operation: core.Duplicate}
	}

	unique, err := s.uniqueNoteTitle(trimmed)
	if err != nil {
		s.logger.Error("could not derive a unique title", "base", trimmed, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}

	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		s.logger.Error("could not get note", "note", noteID, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}
	note.Title = unique
	if err := s.store.UpdateNote(note); err != nil {
		s.logger.Error("could not rename note", "note", noteID, "error", err)
		return core.NoteOperation{Operation: core.Error}
	}

	s.logger.Info("renamed note", "note", noteID, "from", initialTitle, "to", unique)
	s.relay.Publish(relay.NotesChanged{})
	return core.NoteOperation{Operation: core.Success, NoteID: noteID, Title: unique}
}

// SetNoteText updates the plain-text mirror kept in the metadata store for
// search and previews. The authoritative content file is written by the
// caller after a successful result.
func (s *Service) SetNoteText(noteID, text string) core.Operation {
	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		s.logger.Error("could not get note", "note", noteID, "error", err)
		return core.Error
	}
	note.Text = text
	if err := s.store.UpdateNote(note); err != nil {
		s.logger.Error("could not set note text", "note", noteID, "error", err)
		return core.Error
	}
	return core.Success
}

// SetNoteMark toggles a note's mark, recomputes the marked count and
// broadcasts the change to every window.
func (s *Service) SetNoteMark(noteID string, isMarked bool) core.Operation {
	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		s.logger.Error("could not get note", "note", noteID, "error", err)
		return core.Error
	}
	note.IsMarked = isMarked
	if err := s.store.UpdateNote(note); err != nil {
		s.logger.Error("could not set note mark", "note", noteID, "error", err)
		return core.Error
	}

	marked, err := s.store.GetMarkedNotes()
	if err != nil {
		s.logger.Error("could not count marked notes", "error", err)
	}

	s.relay.Publish(relay.NoteMarkChanged{Mark: core.NoteMark{
		NoteID:      noteID,
		IsMarked:    isMarked,
		MarkedCount: len(marked),
	}})
	return core.Success
}

// SetNotebook assigns notes to a notebook. Notes already in the target and
// assignments to the "All Notes" pseudo-notebook are skipped; the
// "Unfiled" pseudo-id maps to the empty reference. Per-note failures do
// not stop the batch.
func (s *Service) SetNotebook(notebookID string, noteIDs []string) core.BatchResult {
	var batch core.BatchResult

	for _, noteID := range noteIDs {
		note, err := s.store.GetNoteByID(noteID)
		if err != nil {
			s.logger.Error("could not get note", "note", noteID, "error", err)
			batch.Fail(noteID, err)
			continue
		}

		if notebookID == core.AllNotesID || notebookID == note.NotebookID {
			continue
		}

		target := notebookID
		if target == core.UnfiledNotesID {
			target = ""
		}

		note.NotebookID = target
		if err := s.store.UpdateNote(note); err != nil {
			s.logger.Error("could not set notebook", "note", noteID, "notebook", notebookID, "error", err)
			batch.Fail(noteID, err)
			continue
		}
		batch.Succeeded++

		// Tell any open window for this note its new notebook name.
		s.relay.Publish(relay.NotebookChanged{
			NoteID:       noteID,
			NotebookName: s.GetNotebook(noteID).Name,
		})
	}

	s.relay.Publish(relay.NotesChanged{})
	return batch
}

// GetNotes lists the notes of a notebook filter, applies the global search
// query, computes the category-filtered result and the aggregate counts in
// one pass, and publishes the counts.
func (s *Service) GetNotes(notebookID string, category core.Category, useExactDates bool) ([]core.Note, error) {
	var (
		uncategorized []core.Note
		err           error
	)

	switch notebookID {
	case core.AllNotesID:
		uncategorized, err = s.store.GetNotes()
	case core.UnfiledNotesID:
		uncategorized, err = s.store.GetUnfiledNotes()
	default:
		uncategorized, err = s.store.GetNotebookNotes(notebookID)
	}
	if err != nil {
		return nil, err
	}

	uncategorized = s.search.Filter(uncategorized)

	var counts core.NoteCounts
	counts.All = len(uncategorized)

	var notes []core.Note
	if category == core.CategoryMarked {
		for _, n := range uncategorized {
			if n.IsMarked {
				notes = append(notes, n)
			}
		}
	}

	now := s.now()
	for i := range uncategorized {
		note := &uncategorized[i]

		if note.IsMarked {
			counts.Marked++
		}

		buckets := bucketsFor(now, note.ModificationDate)
		note.DisplayModificationDate = buckets.Text
		note.DisplayExactModificationDate = formatExactDate(note.ModificationDate)
		if useExactDates {
			note.DisplayModificationDate = note.DisplayExactModificationDate
		}

		switch {
		case category == core.CategoryAll:
			notes = append(notes, *note)
		case category == core.CategoryUnfiled && note.NotebookID == "":
			notes = append(notes, *note)
		}

		if buckets.IsToday {
			if category == core.CategoryToday {
				notes = append(notes, *note)
			}
			counts.Today++
		}
		if buckets.IsYesterday {
			if category == core.CategoryYesterday {
				notes = append(notes, *note)
			}
			counts.Yesterday++
		}
		if buckets.IsThisWeek {
			if category == core.CategoryThisWeek {
				notes = append(notes, *note)
			}
			counts.ThisWeek++
		}
	}

	s.relay.Publish(relay.NotesCountChanged{Counts: counts})
	return notes, nil
}

// SetNoteOpen tracks which notes have an open window. Opening an untracked
// note asks the window manager to open it.
func (s *Service) SetNoteOpen(noteID string, isOpen bool) {
	s.mu.Lock()
	wasOpen := s.openNotes[noteID]
	if isOpen {
		s.openNotes[noteID] = true
	} else {
		delete(s.openNotes, noteID)
	}
	s.mu.Unlock()

	if isOpen && !wasOpen {
		s.relay.Publish(relay.OpenNoteWindow{NoteID: noteID})
	}
}

// NoteIsOpen reports whether a note currently has an open window.
func (s *Service) NoteIsOpen(noteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openNotes[noteID]
}

// HasOpenNotes reports whether any note window is open.
func (s *Service) HasOpenNotes() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.openNotes) > 0
}
