package relay

import (
	"github.com/aretw0/introspection"
)

// RelayState exposes internal state for observability.
type RelayState struct {
	Buffer        int            `json:"buffer"`
	Subscriptions map[string]int `json:"subscriptions"`
}

// State implements introspection.Introspectable.
func (r *Relay) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make(map[string]int, len(r.subs))
	for kind, list := range r.subs {
		subs[kind.String()] = len(list)
	}

	return RelayState{
		Buffer:        r.buffer,
		Subscriptions: subs,
	}
}

// ComponentType implements introspection.Component.
func (r *Relay) ComponentType() string {
	return "relay"
}

var _ introspection.Introspectable = (*Relay)(nil)
var _ introspection.Component = (*Relay)(nil)
