package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

// ErrNoFactory is returned by Acquire when the store cannot build wizards.
var ErrNoFactory = errors.New("session: wizard factory is required")

// Factory builds the wizard for a new session id.
type Factory func(id string) (*wizard.Wizard, error)

type entry struct {
	wizard   *wizard.Wizard
	lastSeen time.Time
}

// Store maps session ids to wizards.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
	logger   zerolog.Logger
	onChange func(active int)
	onEvict  func(id string)
}

// Option customises a Store.
type Option func(*Store)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.With().Str("component", "session").Logger()
	}
}

// WithActiveHook is called with the session count after every insert or
// eviction.
func WithActiveHook(fn func(active int)) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithEvictHook is called with the id of every session removed by Delete,
// Sweep or Close.
func WithEvictHook(fn func(id string)) Option {
	return func(s *Store) {
		s.onEvict = fn
	}
}

// NewStore returns an empty store building wizards with factory.
func NewStore(factory Factory, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		factory: factory,
		ttl:     DefaultTTL,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// TTL reports the idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the live wizard for id and refreshes its idle timer. Expired
// or closed sessions are reported as missing.
func (s *Store) Get(id string) (*wizard.Wizard, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expiredLocked(e, now) || e.wizard.Closed() {
		return nil, false
	}
	e.lastSeen = now
	return e.wizard, true
}

// Acquire returns the wizard for id, or starts a new session under a fresh
// id when id is unknown, expired or closed. Client supplied ids are never
// adopted.
func (s *Store) Acquire(id string) (*wizard.Wizard, string, bool, error) {
	if w, ok := s.Get(id); ok {
		return w, id, false, nil
	}
	if s.factory == nil {
		return nil, "", false, ErrNoFactory
	}

	newID := s.newID()
	w, err := s.factory(newID)
	if err != nil {
		return nil, "", false, err
	}

	s.mu.Lock()
	s.entries[newID] = &entry{wizard: w, lastSeen: s.now()}
	active := len(s.entries)
	s.mu.Unlock()

	s.logger.Debug().Str("session", newID).Msg("session started")
	s.changed(active)
	return w, newID, true, nil
}

// Delete closes and forgets the session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	active := len(s.entries)
	s.mu.Unlock()

	if ok {
		_ = e.wizard.Close()
		s.evicted(id)
		s.changed(active)
	}
}

// Len reports how many sessions are held, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	evicted := make(map[string]*wizard.Wizard)

	s.mu.Lock()
	for id, e := range s.entries {
		if s.expiredLocked(e, now) || e.wizard.Closed() {
			evicted[id] = e.wizard
			delete(s.entries, id)
		}
	}
	active := len(s.entries)
	s.mu.Unlock()

	for id, w := range evicted {
		_ = w.Close()
		s.evicted(id)
	}
	if len(evicted) > 0 {
		s.logger.Debug().Int("evicted", len(evicted)).Int("active", active).Msg("sessions swept")
		s.changed(active)
	}
	return len(evicted)
}

// Close closes every wizard and empties the store.
func (s *Store) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*entry)
	s.mu.Unlock()

	for id, e := range entries {
		_ = e.wizard.Close()
		s.evicted(id)
	}
	s.changed(0)
}

func (s *Store) expiredLocked(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl
}

func (s *Store) changed(active int) {
	if s.onChange != nil {
		s.onChange(active)
	}
}

func (s *Store) evicted(id string) {
	if s.onEvict != nil {
		s.onEvict(id)
	}
}
