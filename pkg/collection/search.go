package collection

import (
	"strings"
	"sync"

	"github.com/notewell/notewell/pkg/core"
)

// Searcher holds the search query shared by every window. A note matches
// when each whitespace-separated term occurs as a substring of its title
// and text taken together.
type Searcher struct {
	mu    sync.RWMutex
	query string
}

// NewSearcher returns a Searcher with an empty query.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Query returns the current search query.
func (s *Searcher) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the current search query.
func (s *Searcher) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
}

// Filter returns the notes matching the current query. An empty or
// whitespace-only query passes every note through untouched.
func (s *Searcher) Filter(notes []core.Note) []core.Note {
	terms := strings.Fields(s.Query())
	if len(terms) == 0 {
		return notes
	}

	matched := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if containsAll(n.Title+n.Text, terms) {
			matched = append(matched, n)
		}
	}
	return matched
}

func containsAll(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
