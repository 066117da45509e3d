package collection

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/notewell/notewell/pkg/relay"
)

// requestKinds are the message kinds the coordinator answers. Notification
// kinds are consumed by windows, not by the service.
var requestKinds = []relay.Kind{
	relay.KindSetNoteOpen,
	relay.KindSetNoteMark,
	relay.KindSetNotebook,
	relay.KindGetNoteDetails,
	relay.KindGetNotebooks,
	relay.KindSetNoteTitle,
	relay.KindSetNoteText,
	relay.KindDeleteNote,
	relay.KindGetSearchText,
}

// listen registers the coordinator's request handlers. Called after every
// (re)initialization; a previous subscription is dropped first so requests
// are never handled twice.
func (s *Service) listen() {
	s.mu.Lock()
	old := s.sub
	s.mu.Unlock()
	if old != nil {
		s.relay.Unsubscribe(old)
	}

	sub := s.relay.Subscribe(requestKinds...)
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	lifecycle.Go(context.Background(), func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-sub.C():
				if !ok {
					return nil
				}
				s.dispatch(msg)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("request dispatcher stopped", "error", err)
	}))
}

func (s *Service) dispatch(msg relay.Message) {
	switch m := msg.(type) {
	case relay.SetNoteOpen:
		s.SetNoteOpen(m.NoteID, m.IsOpen)
	case relay.SetNoteMark:
		s.SetNoteMark(m.NoteID, m.IsMarked)
	case relay.SetNotebook:
		s.SetNotebook(m.NotebookID, m.NoteIDs)
	case relay.GetNoteDetails:
		m.Reply <- s.GetNoteDetails(m.NoteID)
	case relay.GetNotebooks:
		m.Reply <- s.GetNotebooks(false)
	case relay.SetNoteTitle:
		m.Reply <- s.SetNoteTitle(m.NoteID, m.InitialTitle, m.FinalTitle)
	case relay.SetNoteText:
		m.Reply <- s.SetNoteText(m.NoteID, m.Text)
	case relay.DeleteNote:
		s.DeleteNotes([]string{m.NoteID})
	case relay.GetSearchText:
		m.Reply <- s.search.Query()
	default:
		s.logger.Warn("unhandled request", "kind", msg.Kind())
	}
}
