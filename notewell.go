// Package notewell is the composition root for the Notewell library.
//
// It wires the settings store, the cross-window message relay and the
// collection service together so embedders get a working orchestrator from
// a single call.
//
// Philosophy:
//
// Notewell keeps notes in named collections. Each collection pairs a
// metadata database with one flat content file per note; the database is
// the index, the files are the payload. All windows of the application
// talk to one coordinating process through a typed message relay, so the
// stores have exactly one writer.
//
// Usage:
//
//	// Initialize a service rooted at a config directory
//	svc, bus, err := notewell.New(ctx, configDir,
//		notewell.WithLogger(logger),
//	)
//
//	// Create a note
//	result := svc.AddNote("Note", notewell.UnfiledNotesID)
package notewell

import (
	"context"

	"github.com/notewell/notewell/internal/settings"
	"github.com/notewell/notewell/pkg/collection"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
)

// Reserved ids of the synthetic notebooks.
const (
	AllNotesID     = core.AllNotesID
	UnfiledNotesID = core.UnfiledNotesID
)

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Notebook is a public alias for the domain notebook.
type Notebook = core.Notebook

// Operation is the outcome classification of every mutating call.
type Operation = core.Operation

// Operation outcomes.
const (
	Success   = core.Success
	Duplicate = core.Duplicate
	Blank     = core.Blank
	Aborted   = core.Aborted
	Error     = core.Error
)

// Service is the note/notebook orchestrator.
type Service = collection.Service

// Relay is the typed cross-window message bus.
type Relay = relay.Relay

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = collection.Option

// WithLogger sets the logger for the service.
var WithLogger = collection.WithLogger

// WithStrings overrides the default English display strings.
var WithStrings = collection.WithStrings

// --- Factory ---

// New loads the settings under configDir, builds the relay and the
// collection service and initializes the active collection.
func New(ctx context.Context, configDir string, opts ...Option) (*Service, *Relay, error) {
	set, err := settings.Load(configDir)
	if err != nil {
		return nil, nil, err
	}

	bus := relay.New()
	svc := collection.NewService(set, bus, opts...)
	if err := svc.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return svc, bus, nil
}
