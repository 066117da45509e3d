package core

// NoteOperation is the result of a note mutation, carrying the resolved id
// and title when the operation succeeded.
type NoteOperation struct {
	Operation Operation
	NoteID    string
	Title     string
}

// NoteDetails is the answer to a note-details request from a note window.
type NoteDetails struct {
	Title        string
	NotebookName string
	IsMarked     bool
}

// NoteMark reports a mark toggle together with the new marked-notes total.
type NoteMark struct {
	NoteID      string
	IsMarked    bool
	MarkedCount int
}

// NoteCounts carries the aggregate counts recomputed on every listing.
type NoteCounts struct {
	All       int
	Today     int
	Yesterday int
	ThisWeek  int
	Marked    int
}

// ItemFailure records one failed item of a batch operation.
type ItemFailure struct {
	ID  string
	Err error
}

// BatchResult reports the outcome of a best-effort batch: processing
// continues past per-item failures and nothing is rolled back.
type BatchResult struct {
	Succeeded int
	Failures  []ItemFailure
}

// Fail records a failure for id.
func (b *BatchResult) Fail(id string, err error) {
	b.Failures = append(b.Failures, ItemFailure{ID: id, Err: err})
}

// Operation collapses the batch into the closed outcome enum: Error as soon
// as any item failed, Success otherwise.
func (b *BatchResult) Operation() Operation {
	if len(b.Failures) > 0 {
		return Error
	}
	return Success
}
