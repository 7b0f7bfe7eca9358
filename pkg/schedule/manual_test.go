package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	clock := NewManual()
	var fired []string

	clock.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	clock.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	clock.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "b") })

	if n := clock.Advance(9 * time.Millisecond); n != 0 {
		t.Fatalf("expected nothing due yet, fired %d", n)
	}
	if n := clock.Advance(25 * time.Millisecond); n != 3 {
		t.Fatalf("expected three callbacks, got %d", n)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, fired); diff != "" {
		t.Fatalf("firing order mismatch (-want +got):\n%s", diff)
	}
	if clock.Now() != 34*time.Millisecond {
		t.Fatalf("unexpected clock %s", clock.Now())
	}
}

func TestManualStopCancels(t *testing.T) {
	clock := NewManual()
	called := false
	timer := clock.AfterFunc(time.Second, func() { called = true })

	if !timer.Stop() {
		t.Fatalf("expected first stop to report true")
	}
	if timer.Stop() {
		t.Fatalf("expected second stop to report false")
	}
	clock.Advance(2 * time.Second)
	if called {
		t.Fatalf("stopped timer fired")
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending timers")
	}
}

func TestManualChainsTimersWithinWindow(t *testing.T) {
	clock := NewManual()
	var at []time.Duration

	var tick func()
	tick = func() {
		at = append(at, clock.Now())
		if len(at) < 3 {
			clock.AfterFunc(100*time.Millisecond, tick)
		}
	}
	clock.AfterFunc(100*time.Millisecond, tick)

	clock.Advance(250 * time.Millisecond)
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if diff := cmp.Diff(want, at); diff != "" {
		t.Fatalf("chained timers mismatch (-want +got):\n%s", diff)
	}

	next, ok := clock.Next()
	if !ok || next != 50*time.Millisecond {
		t.Fatalf("expected next timer in 50ms, got %s (%v)", next, ok)
	}
}
