package core

import "errors"

// ErrNotFound is returned by Store lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Store is the contract of the structured metadata store. The orchestrator
// is written against this interface; the sqlite adapter lives in pkg/store.
type Store interface {
	// Initialize opens or creates the database file and ensures the schema.
	Initialize(dbPath string) error
	Close() error

	GetNotebooks() ([]Notebook, error)
	GetNotebookByID(id string) (Notebook, error)
	// GetNotebookByName matches case-insensitively.
	GetNotebookByName(name string) (Notebook, error)
	AddNotebook(name string) (string, error)
	UpdateNotebook(nb Notebook) error
	DeleteNotebook(id string) error

	GetNotes() ([]Note, error)
	GetUnfiledNotes() ([]Note, error)
	GetNotebookNotes(notebookID string) ([]Note, error)
	GetMarkedNotes() ([]Note, error)
	GetNoteByID(id string) (Note, error)
	// GetNoteByTitle matches the title exactly.
	GetNoteByTitle(title string) (Note, error)
	// GetNotesWithIdenticalBaseTitle returns notes whose title starts with
	// base. Prefix scanning is an optimization; callers still compare the
	// full title exactly.
	GetNotesWithIdenticalBaseTitle(base string) ([]Note, error)
	// AddNote inserts a note and returns its new id. Both dates are set to
	// the current time.
	AddNote(title, notebookID string) (string, error)
	// UpdateNote persists the note and refreshes its modification date.
	UpdateNote(n Note) error
	// UpdateNoteWithoutDate persists the note, preserving the stored
	// modification date. Used by import.
	UpdateNoteWithoutDate(n Note) error
	DeleteNote(id string) error
}
