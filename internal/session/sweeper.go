package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSweepSchedule runs the sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

// Sweeper runs Store.Sweep on a cron schedule.
type Sweeper struct {
	store    *Store
	cron     *cron.Cron
	schedule string
	logger   zerolog.Logger

	mu      sync.Mutex
	entry   cron.EntryID
	running bool
}

// NewSweeper parses schedule (standard five-field cron or a descriptor such
// as "@every 30s"). Blank uses DefaultSweepSchedule.
func NewSweeper(store *Store, schedule string, logger zerolog.Logger) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	s := &Sweeper{
		store:    store,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
	}
	entry, err := s.cron.AddFunc(schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("session: sweep schedule %q: %w", schedule, err)
	}
	s.entry = entry
	return s, nil
}

// Start begins the schedule. Calling it twice is a no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.logger.Info().Str("schedule", s.schedule).Msg("session sweeper started")
}

// Stop halts the schedule and waits for a running sweep or ctx, whichever
// ends first.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info().Msg("session sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("session sweeper stop timeout")
		return ctx.Err()
	}
}

// Next reports when the next sweep is due. It is zero until Start.
func (s *Sweeper) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

func (s *Sweeper) run() {
	if n := s.store.Sweep(); n > 0 {
		s.logger.Debug().Int("evicted", n).Msg("expired sessions removed")
	}
}
