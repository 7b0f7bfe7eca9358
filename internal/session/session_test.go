package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/pkg/model"
	"github.com/goliatone/go-leadwizard/pkg/testsupport"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

func testFactory(id string) (*wizard.Wizard, error) {
	return wizard.New([]model.Step{
		{Title: "Role", Key: "role", Options: []string{"CEO", "CTO"}},
	}, wizard.WithSession(id), wizard.WithAdvanceDelay(0))
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	}
}

func TestAcquireCreatesUUIDSessions(t *testing.T) {
	store := NewStore(testFactory)

	w, id, created, err := store.Acquire("")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !created {
		t.Fatalf("expected a new session")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid session id, got %q", id)
	}
	if w.Session() != id {
		t.Fatalf("wizard session = %q, want %q", w.Session(), id)
	}

	again, sameID, created, err := store.Acquire(id)
	if err != nil || created || sameID != id || again != w {
		t.Fatalf("expected existing session, got created=%v id=%q err=%v", created, sameID, err)
	}
}

func TestAcquireNeverAdoptsClientID(t *testing.T) {
	store := NewStore(testFactory, WithIDGenerator(sequentialIDs()))

	_, id, created, err := store.Acquire("attacker-chosen")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !created || id != "sess-1" {
		t.Fatalf("expected fresh id, got %q created=%v", id, created)
	}
	if _, ok := store.Get("attacker-chosen"); ok {
		t.Fatalf("client id must not be registered")
	}
}

func TestAcquireWithoutFactory(t *testing.T) {
	store := NewStore(nil)
	if _, _, _, err := store.Acquire(""); !errors.Is(err, ErrNoFactory) {
		t.Fatalf("expected ErrNoFactory, got %v", err)
	}
}

func TestExpiryAndSweep(t *testing.T) {
	clock := testsupport.NewClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	var evicted []string
	var active []int
	store := NewStore(testFactory,
		WithTTL(time.Minute),
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithEvictHook(func(id string) { evicted = append(evicted, id) }),
		WithActiveHook(func(n int) { active = append(active, n) }),
		WithLogger(zerolog.Nop()),
	)

	old, _, _, _ := store.Acquire("")
	clock.Add(45 * time.Second)
	_, _, _, _ = store.Acquire("")
	clock.Add(30 * time.Second)

	if _, ok := store.Get("sess-1"); ok {
		t.Fatalf("sess-1 should have expired")
	}
	if _, ok := store.Get("sess-2"); !ok {
		t.Fatalf("sess-2 should still be live")
	}

	if n := store.Sweep(); n != 1 {
		t.Fatalf("sweep evicted %d, want 1", n)
	}
	if !old.Closed() {
		t.Fatalf("swept wizard should be closed")
	}
	if err := old.SelectOption("role", "CEO"); !errors.Is(err, wizard.ErrClosed) {
		t.Fatalf("expected ErrClosed after sweep, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
	if len(evicted) != 1 || evicted[0] != "sess-1" {
		t.Fatalf("evicted = %v", evicted)
	}
	if got := active[len(active)-1]; got != 1 {
		t.Fatalf("last active count = %d", got)
	}
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	clock := testsupport.NewClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	store := NewStore(testFactory, WithTTL(time.Minute), WithClock(clock.Now), WithIDGenerator(sequentialIDs()))

	_, _, _, _ = store.Acquire("")
	for i := 0; i < 3; i++ {
		clock.Add(40 * time.Second)
		if _, ok := store.Get("sess-1"); !ok {
			t.Fatalf("session expired despite activity at round %d", i)
		}
	}
	if n := store.Sweep(); n != 0 {
		t.Fatalf("sweep evicted %d active sessions", n)
	}
}

func TestDeleteAndClose(t *testing.T) {
	store := NewStore(testFactory, WithIDGenerator(sequentialIDs()))
	first, _, _, _ := store.Acquire("")
	second, _, _, _ := store.Acquire("")

	store.Delete("sess-1")
	if !first.Closed() || store.Len() != 1 {
		t.Fatalf("delete did not close/remove session")
	}

	store.Close()
	if !second.Closed() || store.Len() != 0 {
		t.Fatalf("close did not empty the store")
	}
}

func TestClosedWizardStartsNewSession(t *testing.T) {
	store := NewStore(testFactory, WithIDGenerator(sequentialIDs()))
	w, _, _, _ := store.Acquire("")
	_ = w.Close()

	_, id, created, err := store.Acquire("sess-1")
	if err != nil || !created || id != "sess-2" {
		t.Fatalf("expected a replacement session, got %q created=%v err=%v", id, created, err)
	}
}

func TestSweeperSchedule(t *testing.T) {
	store := NewStore(testFactory)
	if _, err := NewSweeper(store, "not a schedule", zerolog.Nop()); err == nil {
		t.Fatalf("expected schedule error")
	}

	sweeper, err := NewSweeper(store, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("new sweeper: %v", err)
	}
	if !sweeper.Next().IsZero() {
		t.Fatalf("next should be zero before start")
	}
	sweeper.Start()
	sweeper.Start()
	if sweeper.Next().IsZero() {
		t.Fatalf("expected next run after start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sweeper.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := sweeper.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestLimiter(t *testing.T) {
	limiter := NewLimiter(0.001, 2)
	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatalf("burst should allow two submissions")
	}
	if limiter.Allow("a") {
		t.Fatalf("third submission should be limited")
	}
	if !limiter.Allow("b") {
		t.Fatalf("keys must not share buckets")
	}
	if limiter.Len() != 2 {
		t.Fatalf("len = %d", limiter.Len())
	}

	limiter.Forget("a")
	if !limiter.Allow("a") {
		t.Fatalf("forgotten key should start with a full bucket")
	}

	unlimited := NewLimiter(0, 0)
	for i := 0; i < 10; i++ {
		if !unlimited.Allow("a") {
			t.Fatalf("zero rate should disable limiting")
		}
	}
	var nilLimiter *Limiter
	if !nilLimiter.Allow("a") {
		t.Fatalf("nil limiter should allow")
	}
}
