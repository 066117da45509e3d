package collection

import (
	"encoding/json"
	"os"

	"github.com/notewell/notewell/pkg/core"
)

// exportDocument is the portable note format: the title, the plain-text
// mirror, and the rich-text document serialized as a string.
type exportDocument struct {
	Title   string `json:"title"`
	Text    string `json:"text"`
	Content string `json:"content"`
}

// ExportNote writes a note and its rich content to targetPath as a single
// JSON document readable by ImportNoteFiles.
func (s *Service) ExportNote(noteID, targetPath string) core.Operation {
	note, err := s.store.GetNoteByID(noteID)
	if err != nil {
		s.logger.Error("could not get note", "note", noteID, "error", err)
		return core.Error
	}

	files, err := s.contentStore()
	if err != nil {
		s.logger.Error("could not read note content", "note", noteID, "error", err)
		return core.Error
	}
	body, err := files.Read(noteID)
	if err != nil {
		s.logger.Error("could not read note content", "note", noteID, "error", err)
		return core.Error
	}

	doc := exportDocument{Title: note.Title, Text: note.Text, Content: string(body)}
	data, err := json.Marshal(doc)
	if err != nil {
		s.logger.Error("could not serialize note export", "note", noteID, "error", err)
		return core.Error
	}

	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		s.logger.Error("could not write note export", "note", noteID, "path", targetPath, "error", err)
		return core.Error
	}

	s.logger.Info("exported note", "note", noteID, "path", targetPath)
	return core.Success
}
