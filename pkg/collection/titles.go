package collection

import "fmt"

// uniqueNewNoteTitle numbers a fresh note title: "Note 1", "Note 2" and so
// on, skipping numbers already in use.
func (s *Service) uniqueNewNoteTitle(baseTitle string) (string, error) {
	taken, err := s.similarTitles(baseTitle)
	if err != nil {
		return "", err
	}

	counter := 1
	title := fmt.Sprintf("%s %d", baseTitle, counter)
	for taken[title] {
		counter++
		title = fmt.Sprintf("%s %d", baseTitle, counter)
	}
	return title, nil
}

// uniqueNoteTitle resolves a rename target: the base title itself when
// free, otherwise the first free "base (N)" variant.
func (s *Service) uniqueNoteTitle(baseTitle string) (string, error) {
	taken, err := s.similarTitles(baseTitle)
	if err != nil {
		return "", err
	}

	counter := 0
	title := baseTitle
	for taken[title] {
		counter++
		title = fmt.Sprintf("%s (%d)", baseTitle, counter)
	}
	return title, nil
}

func (s *Service) similarTitles(baseTitle string) (map[string]bool, error) {
	notes, err := s.store.GetNotesWithIdenticalBaseTitle(baseTitle)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(notes))
	for _, n := range notes {
		taken[n.Title] = true
	}
	return taken, nil
}
