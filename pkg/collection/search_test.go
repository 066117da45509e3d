package collection

import (
	"testing"

	"github.com/notewell/notewell/pkg/core"
)

func TestSearcher_Filter(t *testing.T) {
	notes := []core.Note{
		{ID: "1", Title: "foobar report", Text: ""},
		{ID: "2", Title: "groceries", Text: "buy a bar of soap"},
		{ID: "3", Title: "empty", Text: ""},
	}

	t.Run("Empty Query Passes Everything Through", func(t *testing.T) {
		s := NewSearcher()

		got := s.Filter(notes)
		if len(got) != len(notes) {
			t.Errorf("Expected %d notes, got %d", len(notes), len(got))
		}
	})

	t.Run("Whitespace Query Passes Everything Through", func(t *testing.T) {
		s := NewSearcher()
		s.SetQuery("   ")

		if got := s.Filter(notes); len(got) != len(notes) {
			t.Errorf("Expected %d notes, got %d", len(notes), len(got))
		}
	})

	t.Run("Tokens Combined With AND", func(t *testing.T) {
		s := NewSearcher()
		s.SetQuery("foo bar")

		got := s.Filter(notes)
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("Expected only 'foobar report', got %v", got)
		}
	})

	t.Run("Matches Text Too", func(t *testing.T) {
		s := NewSearcher()
		s.SetQuery("soap")

		got := s.Filter(notes)
		if len(got) != 1 || got[0].ID != "2" {
			t.Errorf("Expected only the groceries note, got %v", got)
		}
	})

	t.Run("No Match", func(t *testing.T) {
		s := NewSearcher()
		s.SetQuery("foo quux")

		if got := s.Filter(notes); len(got) != 0 {
			t.Errorf("Expected no notes, got %v", got)
		}
	})
}
