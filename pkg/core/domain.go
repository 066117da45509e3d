// Package core holds the domain model shared by the relay, the stores and
// the collection orchestrator.
package core

// Reserved ids of the two synthetic notebooks. They are generated at read
// time and never persisted.
const (
	AllNotesID     = "1"
	UnfiledNotesID = "2"
)

// Notebook is a user-defined grouping of notes.
type Notebook struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// AllNotesNotebook returns the synthetic "All Notes" notebook.
func AllNotesNotebook(name string) Notebook {
	return Notebook{ID: AllNotesID, Name: name, IsDefault: true}
}

// UnfiledNotesNotebook returns the synthetic "Unfiled Notes" notebook.
func UnfiledNotesNotebook(name string) Notebook {
	return Notebook{ID: UnfiledNotesID, Name: name, IsDefault: true}
}

// Note is a titled piece of content. The authoritative rich content lives in
// a flat file next to the database; Text is the plain representation kept
// for search and previews. Dates are Unix milliseconds.
type Note struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Text             string `json:"text"`
	NotebookID       string `json:"notebookId"` // empty = unfiled
	IsMarked         bool   `json:"isMarked"`
	CreationDate     int64  `json:"creationDate"`
	ModificationDate int64  `json:"modificationDate"`

	// Derived per listing request, never persisted.
	DisplayModificationDate      string `json:"-"`
	DisplayExactModificationDate string `json:"-"`
}

// Category is a derived, non-persisted grouping of notes, recomputed on
// every listing.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryToday     Category = "today"
	CategoryYesterday Category = "yesterday"
	CategoryThisWeek  Category = "thisweek"
	CategoryMarked    Category = "marked"
	CategoryUnfiled   Category = "unfiled"
)

// Operation classifies the outcome of every mutating call. It is produced
// fresh per call and consumed immediately by the caller; the underlying
// cause of an Error is logged, never surfaced directly.
type Operation int

const (
	Success Operation = iota
	Duplicate
	Blank
	Aborted
	Error
)

func (o Operation) String() string {
	switch o {
	case Success:
		return "success"
	case Duplicate:
		return "duplicate"
	case Blank:
		return "blank"
	case Aborted:
		return "aborted"
	default:
		return "error"
	}
}
