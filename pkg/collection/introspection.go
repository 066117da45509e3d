package collection

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Initialized      bool   `json:"initialized"`
	ActiveCollection string `json:"active_collection"`
	DatabasePath     string `json:"database_path"`
	OpenNotes        int    `json:"open_notes"`
	Watching         bool   `json:"watching"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ServiceState{
		Initialized:      s.state == stateInitialized,
		ActiveCollection: s.settings.ActiveCollection(),
		DatabasePath:     s.dbPath,
		OpenNotes:        len(s.openNotes),
		Watching:         s.watcher != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "collection-service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
