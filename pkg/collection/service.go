// Package collection implements the synchronization core: the collection
// lifecycle, the note/notebook orchestrator over the metadata store and the
// content file store, categorization, search filtering and legacy import.
//
// The service is driven two ways: direct method calls, and request messages
// arriving over the relay. Only one process registers relay handlers; every
// other window routes mutations through the relay, so exclusive store
// ownership is structural rather than lock-based.
package collection

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/notewell/notewell/internal/settings"
	"github.com/notewell/notewell/pkg/content"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
	"github.com/notewell/notewell/pkg/store"
)

// DefaultCollection is the collection created when the storage root holds
// none.
const DefaultCollection = "Default"

// Strings carries the user-visible names the service needs. Translation is
// the host application's concern; these are the resolved strings.
type Strings struct {
	AllNotes     string
	UnfiledNotes string
	Imported     string
}

func defaultStrings() Strings {
	return Strings{
		AllNotes:     "All Notes",
		UnfiledNotes: "Unfiled Notes",
		Imported:     "imported",
	}
}

type initState int

const (
	stateUninitialized initState = iota
	stateInitializing
	stateInitialized
)

// Service is the note/notebook orchestrator.
type Service struct {
	settings *settings.Settings
	relay    *relay.Relay
	store    core.Store
	logger   *slog.Logger
	strings  Strings
	search   *Searcher
	now      func() time.Time

	mu        sync.Mutex
	state     initState
	initDone  chan struct{}
	initErr   error
	content   *content.Store
	dbPath    string
	openNotes map[string]bool
	sub       *relay.Subscription

	watcher *storageWatcher
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore injects a custom metadata store (e.g. a mock). The sqlite store
// is used by default.
func WithStore(st core.Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

// WithStrings overrides the default English display strings.
func WithStrings(str Strings) Option {
	return func(s *Service) {
		s.strings = str
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service bound to the settings store and the relay.
func NewService(set *settings.Settings, r *relay.Relay, opts ...Option) *Service {
	s := &Service{
		settings:  set,
		relay:     r,
		logger:    slog.Default(),
		strings:   defaultStrings(),
		now:       time.Now,
		openNotes: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = store.New()
	}
	s.search = NewSearcher()
	return s
}

// Search returns the global search state shared by all windows.
func (s *Service) Search() *Searcher {
	return s.search
}

// errNotInitialized guards entry points that need the per-collection
// stores before Initialize has run.
var errNotInitialized = errors.New("collection service is not initialized")

// contentStore returns the content store of the active collection, or
// errNotInitialized before Initialize has run.
func (s *Service) contentStore() (*content.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content == nil {
		return nil, errNotInitialized
	}
	return s.content, nil
}
