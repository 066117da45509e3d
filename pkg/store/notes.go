package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/notewell/notewell/pkg/core"
)

const noteColumns = `id, title, text, notebook_id, is_marked, creation_date, modification_date`

// GetNotes returns every note, most recently modified first.
func (s *Store) GetNotes() ([]core.Note, error) {
	return s.queryNotes(`SELECT ` + noteColumns + ` FROM notes ORDER BY modification_date DESC`)
}

// GetUnfiledNotes returns notes without a notebook assignment.
func (s *Store) GetUnfiledNotes() ([]core.Note, error) {
	return s.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE notebook_id = '' ORDER BY modification_date DESC`,
	)
}

// GetNotebookNotes returns the notes assigned to a notebook.
func (s *Store) GetNotebookNotes(notebookID string) ([]core.Note, error) {
	return s.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE notebook_id = ? ORDER BY modification_date DESC`,
		notebookID)
}

// GetMarkedNotes returns all marked notes.
func (s *Store) GetMarkedNotes() ([]core.Note, error) {
	return s.queryNotes(`SELECT ` + noteColumns + ` FROM notes WHERE is_marked = 1 ORDER BY modification_date DESC`)
}

// GetNoteByID returns the note with the given id.
func (s *Store) GetNoteByID(id string) (core.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	return scanNoteRow(row)
}

// GetNoteByTitle returns the note whose title matches exactly.
func (s *Store) GetNoteByTitle(title string) (core.Note, error) {
	row := s.db.QueryRow(`SELECT `+noteColumns+` FROM notes WHERE title = ?`, title)
	return scanNoteRow(row)
}

// GetNotesWithIdenticalBaseTitle returns notes whose title starts with
// base. The prefix scan narrows the candidate set; callers compare the full
// title exactly.
func (s *Store) GetNotesWithIdenticalBaseTitle(base string) ([]core.Note, error) {
	return s.queryNotes(`SELECT `+noteColumns+` FROM notes WHERE title LIKE ? ESCAPE '\'`,
		escapeLike(base)+"%")
}

// AddNote inserts a note with both dates set to now and returns its new id.
func (s *Store) AddNote(title, notebookID string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UnixMilli()
	_, err := s.db.Exec(`INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, '', ?, 0, ?, ?)`,
		id, title, notebookID, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert note: %w", err)
	}
	return id, nil
}

// UpdateNote persists the note and refreshes its modification date.
func (s *Store) UpdateNote(n core.Note) error {
	res, err := s.db.Exec(`UPDATE notes SET title = ?, text = ?, notebook_id = ?, is_marked = ?, modification_date = ? WHERE id = ?`,
		n.Title, n.Text, n.NotebookID, boolToInt(n.IsMarked), time.Now().UnixMilli(), n.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res)
}

// UpdateNoteWithoutDate persists the note including both stored dates,
// leaving the modification date exactly as carried by n. Used by import.
func (s *Store) UpdateNoteWithoutDate(n core.Note) error {
	res, err := s.db.Exec(`UPDATE notes SET title = ?, text = ?, notebook_id = ?, is_marked = ?, creation_date = ?, modification_date = ? WHERE id = ?`,
		n.Title, n.Text, n.NotebookID, boolToInt(n.IsMarked), n.CreationDate, n.ModificationDate, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return requireRow(res)
}

// DeleteNote removes a note's metadata row.
func (s *Store) DeleteNote(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireRow(res)
}

func (s *Store) queryNotes(query string, args ...any) ([]core.Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var n core.Note
		var marked int
		if err := rows.Scan(&n.ID, &n.Title, &n.Text, &n.NotebookID, &marked, &n.CreationDate, &n.ModificationDate); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.IsMarked = marked != 0
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanNoteRow(row *sql.Row) (core.Note, error) {
	var n core.Note
	var marked int
	err := row.Scan(&n.ID, &n.Title, &n.Text, &n.NotebookID, &marked, &n.CreationDate, &n.ModificationDate)
	if err == sql.ErrNoRows {
		return core.Note{}, core.ErrNotFound
	}
	if err != nil {
		return core.Note{}, fmt.Errorf("failed to scan note: %w", err)
	}
	n.IsMarked = marked != 0
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
