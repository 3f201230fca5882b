package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// State is the lifecycle position of a Session.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateUnsaved State = "unsaved"
	StateSaving  State = "saving"
	StateClosed  State = "closed"
)

const DefaultAutosaveDelay = 3 * time.Second

var (
	ErrClosed           = errors.New("editor: session closed")
	ErrNotReady         = errors.New("editor: session still loading")
	ErrBlockNotFound    = errors.New("editor: block not found")
	ErrSaveInProgress   = errors.New("editor: save already in progress")
	ErrLanguageRequired = errors.New("editor: language is required")
	ErrPageNotFound     = errors.New("editor: page not found")
)

// Session holds the in-memory draft of one page while it is being edited.
//
// Saves send the whole draft, so two sessions editing the same page resolve
// as last write wins. Only one save runs at a time. An autosave that fires
// while another save is in flight is re-armed; explicit saves wait for it.
type Session struct {
	mu sync.Mutex

	ctx       context.Context
	pages     pages.Service
	registry  *blocks.Registry
	scheduler Scheduler
	delay     time.Duration
	logger    interfaces.Logger
	watch     bool

	state    State
	draft    *pages.Page
	lang     string
	selected string

	revision      int
	saving        bool
	idle          *sync.Cond
	timer         Timer
	timerGen      int
	lastErr       error
	remoteChanged bool
	remoteDeleted bool
	remoteGen     int
	savedPrint    string
	storedPrint   string
	storedAt      time.Time
	overwroteAt   time.Time
	sub           pages.Subscription
}

// Option configures a Session.
type Option func(*Session)

func WithScheduler(scheduler Scheduler) Option {
	return func(s *Session) {
		if scheduler != nil {
			s.scheduler = scheduler
		}
	}
}

// WithAutosaveDelay sets the quiet period before an autosave fires.
func WithAutosaveDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

func WithRegistry(registry *blocks.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.registry = registry
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLanguage sets the initial editing language.
func WithLanguage(lang string) Option {
	return func(s *Session) {
		if lang = strings.TrimSpace(lang); lang != "" {
			s.lang = lang
		}
	}
}

// WithoutWatch disables the realtime subscription to the stored page.
func WithoutWatch() Option {
	return func(s *Session) {
		s.watch = false
	}
}

func newSession(ctx context.Context, svc pages.Service, opts []Option) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Session{
		ctx:       ctx,
		pages:     svc,
		registry:  blocks.DefaultRegistry(),
		scheduler: SystemScheduler{},
		delay:     DefaultAutosaveDelay,
		logger:    logging.NoOp(),
		watch:     true,
		state:     StateLoading,
		lang:      blocks.BaseLanguage,
	}
	s.idle = sync.NewCond(&s.mu)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// New starts a session for a page that does not exist yet. The first save
// creates it; later saves update it.
func New(ctx context.Context, svc pages.Service, opts ...Option) *Session {
	s := newSession(ctx, svc, opts)
	settings := pages.DefaultSettings()
	s.draft = &pages.Page{
		Title:    pages.Localized{blocks.BaseLanguage: ""},
		Status:   pages.StatusDraft,
		Blocks:   []blocks.Block{},
		Settings: settings,
	}
	s.state = StateReady
	return s
}

// Open loads the page with id and subscribes to its changes. ctx must carry
// the editing actor; autosaves reuse it.
func Open(ctx context.Context, svc pages.Service, id string, opts ...Option) (*Session, error) {
	s := newSession(ctx, svc, opts)
	page, err := svc.GetByID(s.ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}

	s.mu.Lock()
	s.draft = page.Clone()
	s.draft.Blocks = blocks.Renumber(s.draft.Blocks)
	s.storedPrint = fingerprint(page)
	s.storedAt = page.UpdatedAt
	s.state = StateReady
	s.mu.Unlock()

	if err := s.subscribe(id); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) subscribe(id string) error {
	if !s.watch {
		return nil
	}
	sub, err := s.pages.Watch(s.ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		sub.Close()
		return nil
	}
	s.sub = sub
	s.mu.Unlock()

	go func() {
		for snap := range sub.C() {
			s.ApplyRemote(snap)
		}
	}()
	return nil
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ID is empty until a new page has been saved once.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.ID
}

// Draft returns a copy of the page being edited.
func (s *Session) Draft() *pages.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Selected returns the id of the selected block, if any.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// LastError is the error of the most recent failed save, cleared by the next
// successful one.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// RemoteChanged reports that the stored page changed while local edits were
// pending, so the remote version was not applied.
func (s *Session) RemoteChanged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteChanged
}

// RemoteDeleted reports that the stored page was deleted.
func (s *Session) RemoteDeleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteDeleted
}

// SetLanguage switches the language being edited. Content in other languages
// is left untouched.
func (s *Session) SetLanguage(lang string) error {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ErrLanguageRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	s.lang = lang
	return nil
}

// Select marks id as the selected block. An empty id clears the selection.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if id != "" && blocks.IndexOf(s.draft.Blocks, id) < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	s.selected = id
	return nil
}

// ApplyRemote handles a snapshot from the page subscription. The stored
// version replaces the draft only when there are no local edits.
func (s *Session) ApplyRemote(snap pages.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed || s.draft == nil {
		return
	}
	logger := logging.WithPage(s.logger, s.draft.ID, s.draft.Slug)
	switch {
	case snap.Err != nil:
		logger.Warn("editor.remote.error", "error", snap.Err)
	case snap.Deleted:
		s.remoteDeleted = true
		s.remoteChanged = true
		s.remoteGen++
	case snap.Page != nil:
		if snap.Page.ID != "" && s.draft.ID != "" && snap.Page.ID != s.draft.ID {
			return
		}
		// Snapshots older than the last known version, or no newer than the
		// version our last save replaced, are stale.
		if snap.Page.UpdatedAt.Before(s.storedAt) {
			return
		}
		if !s.overwroteAt.IsZero() && !snap.Page.UpdatedAt.After(s.overwroteAt) {
			return
		}
		current := fingerprint(snap.Page)
		known := current == s.storedPrint || (s.savedPrint != "" && current == s.savedPrint)
		s.storedPrint = current
		s.storedAt = snap.Page.UpdatedAt
		if s.state != StateReady || s.saving {
			if known {
				return
			}
			s.remoteChanged = true
			s.remoteGen++
			logger.Debug("editor.remote.deferred", "state", string(s.state))
			return
		}
		next := snap.Page.Clone()
		next.Blocks = blocks.Renumber(next.Blocks)
		s.draft = next
		s.remoteChanged = false
		s.remoteDeleted = false
		if s.selected != "" && blocks.IndexOf(next.Blocks, s.selected) < 0 {
			s.selected = ""
		}
	}
}

// Close cancels the pending autosave and the subscription. Unsaved edits
// are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.stopTimerLocked()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}

func (s *Session) usableLocked() error {
	switch s.state {
	case StateClosed:
		return ErrClosed
	case StateLoading:
		return ErrNotReady
	}
	return nil
}

// mutate applies fn to the draft, marks the session unsaved and restarts the
// autosave debounce.
func (s *Session) mutate(fn func(draft *pages.Page) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := fn(s.draft); err != nil {
		return err
	}
	s.revision++
	if s.state != StateSaving {
		s.state = StateUnsaved
	}
	s.armLocked()
	return nil
}

func (s *Session) armLocked() {
	s.stopTimerLocked()
	s.timerGen++
	gen := s.timerGen
	s.timer = s.scheduler.AfterFunc(s.delay, func() { s.autosave(gen) })
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) blockIndexLocked(id string) (int, error) {
	idx := blocks.IndexOf(s.draft.Blocks, id)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return idx, nil
}

func cloneKeywords(in []string) []string {
	return slices.Clone(in)
}

// fingerprint identifies the saved content of page so the session can
// recognise its own writes echoed back by the subscription.
func fingerprint(page *pages.Page) string {
	if page == nil {
		return ""
	}
	raw, err := json.Marshal(struct {
		Title    pages.Localized
		Status   pages.Status
		SEO      pages.SEO
		Blocks   []blocks.Block
		Settings pages.Settings
	}{page.Title, page.Status, page.SEO, page.Blocks, page.Settings})
	if err != nil {
		return ""
	}
	return string(raw)
}
