// Package relay is the typed cross-window message bus. The event vocabulary
// is a closed set of message kinds; every message carries exactly the fields
// its kind needs, and requests embed a typed reply channel.
package relay

import "github.com/notewell/notewell/pkg/core"

// Kind identifies a message kind. The set is closed: windows and the
// orchestrator exchange these kinds and nothing else.
type Kind int

const (
	KindOpenNoteWindow Kind = iota
	KindPrintNote
	KindPrintToPDFReady
	KindSetNoteOpen
	KindSetNoteMark
	KindSetNotebook
	KindGetNoteDetails
	KindGetNotebooks
	KindSetNoteTitle
	KindSetNoteText
	KindDeleteNote
	KindFocusNote
	KindCloseNote
	KindGetSearchText

	KindNoteMarkChanged
	KindNotebookChanged
	KindNotesCountChanged
	KindNotebooksChanged
	KindNotesChanged
	KindCollectionsChanged
)

var kindNames = map[Kind]string{
	KindOpenNoteWindow:     "open-note-window",
	KindPrintNote:          "print-note",
	KindPrintToPDFReady:    "print-to-pdf-ready",
	KindSetNoteOpen:        "set-note-open",
	KindSetNoteMark:        "set-note-mark",
	KindSetNotebook:        "set-notebook",
	KindGetNoteDetails:     "get-note-details",
	KindGetNotebooks:       "get-notebooks",
	KindSetNoteTitle:       "set-note-title",
	KindSetNoteText:        "set-note-text",
	KindDeleteNote:         "delete-note",
	KindFocusNote:          "focus-note",
	KindCloseNote:          "close-note",
	KindGetSearchText:      "get-search-text",
	KindNoteMarkChanged:    "note-mark-changed",
	KindNotebookChanged:    "notebook-changed",
	KindNotesCountChanged:  "notes-count-changed",
	KindNotebooksChanged:   "notebooks-changed",
	KindNotesChanged:       "notes-changed",
	KindCollectionsChanged: "collections-changed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Message is the sealed union of all relay messages.
type Message interface {
	Kind() Kind
}

// --- Window commands ---

// OpenNoteWindow asks the window manager to open a note in its own window.
type OpenNoteWindow struct {
	NoteID string
}

// PrintNote asks the note window to print its content.
type PrintNote struct {
	NoteID string
}

// PrintToPDFReady reports that a PDF rendering of a note has been written.
type PrintToPDFReady struct {
	Path string
}

// FocusNote asks an already open note window to take focus.
type FocusNote struct {
	NoteID string
}

// CloseNote asks an open note window to close.
type CloseNote struct {
	NoteID string
}

// --- Orchestrator requests ---

// SetNoteOpen marks a note as open or closed in the orchestrator's
// open-note tracking.
type SetNoteOpen struct {
	NoteID string
	IsOpen bool
}

// SetNoteMark toggles a note's mark.
type SetNoteMark struct {
	NoteID   string
	IsMarked bool
}

// SetNotebook assigns notes to a notebook.
type SetNotebook struct {
	NotebookID string
	NoteIDs    []string
}

// GetNoteDetails requests a note's title, notebook name and mark state.
type GetNoteDetails struct {
	NoteID string
	Reply  chan<- core.NoteDetails
}

// GetNotebooks requests the persisted notebooks plus the synthetic
// "Unfiled Notes" notebook.
type GetNotebooks struct {
	Reply chan<- []core.Notebook
}

// SetNoteTitle renames a note, resolving title collisions.
type SetNoteTitle struct {
	NoteID       string
	InitialTitle string
	FinalTitle   string
	Reply        chan<- core.NoteOperation
}

// SetNoteText updates the plain-text mirror of a note's content.
type SetNoteText struct {
	NoteID string
	Text   string
	Reply  chan<- core.Operation
}

// DeleteNote removes a note, its content file and its state sidecar.
type DeleteNote struct {
	NoteID string
}

// GetSearchText requests the active global search query.
type GetSearchText struct {
	Reply chan<- string
}

// --- Notifications ---

// NoteMarkChanged is broadcast after a mark toggle so every open window can
// refresh its mark indicator.
type NoteMarkChanged struct {
	Mark core.NoteMark
}

// NotebookChanged is broadcast per note after a notebook reassignment so an
// open window for that note can refresh its displayed notebook name.
type NotebookChanged struct {
	NoteID       string
	NotebookName string
}

// NotesCountChanged carries the aggregate counts recomputed by a listing.
type NotesCountChanged struct {
	Counts core.NoteCounts
}

// NotebooksChanged signals that the notebook set changed.
type NotebooksChanged struct{}

// NotesChanged signals that the note set changed.
type NotesChanged struct{}

// CollectionsChanged signals that a collection was added, renamed, deleted
// or activated; the current initialization is no longer valid.
type CollectionsChanged struct{}

func (OpenNoteWindow) Kind() Kind     { return KindOpenNoteWindow }
func (PrintNote) Kind() Kind          { return KindPrintNote }
func (PrintToPDFReady) Kind() Kind    { return KindPrintToPDFReady }
func (FocusNote) Kind() Kind          { return KindFocusNote }
func (CloseNote) Kind() Kind          { return KindCloseNote }
func (SetNoteOpen) Kind() Kind        { return KindSetNoteOpen }
func (SetNoteMark) Kind() Kind        { return KindSetNoteMark }
func (SetNotebook) Kind() Kind        { return KindSetNotebook }
func (GetNoteDetails) Kind() Kind     { return KindGetNoteDetails }
func (GetNotebooks) Kind() Kind       { return KindGetNotebooks }
func (SetNoteTitle) Kind() Kind       { return KindSetNoteTitle }
func (SetNoteText) Kind() Kind        { return KindSetNoteText }
func (DeleteNote) Kind() Kind         { return KindDeleteNote }
func (GetSearchText) Kind() Kind      { return KindGetSearchText }
func (NoteMarkChanged) Kind() Kind    { return KindNoteMarkChanged }
func (NotebookChanged) Kind() Kind    { return KindNotebookChanged }
func (NotesCountChanged) Kind() Kind  { return KindNotesCountChanged }
func (NotebooksChanged) Kind() Kind   { return KindNotebooksChanged }
func (NotesChanged) Kind() Kind       { return KindNotesChanged }
func (CollectionsChanged) Kind() Kind { return KindCollectionsChanged }
