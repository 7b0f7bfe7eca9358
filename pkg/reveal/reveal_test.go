package reveal

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLatchOnceStaysVisible(t *testing.T) {
	latch := NewLatch(DefaultOptions())
	got := []bool{latch.Observe(false), latch.Observe(true), latch.Observe(false)}
	if diff := cmp.Diff([]bool{false, true, true}, got); diff != "" {
		t.Fatalf("latch sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestLatchRepeatFollowsObserver(t *testing.T) {
	latch := NewLatch(NewOptions(WithRepeat()))
	got := []bool{latch.Observe(true), latch.Observe(false), latch.Observe(true)}
	if diff := cmp.Diff([]bool{true, false, true}, got); diff != "" {
		t.Fatalf("latch sequence mismatch (-want +got):\n%s", diff)
	}
	if !latch.Visible() {
		t.Fatalf("expected visible after last observation")
	}
}

func TestOptionsConfigAndAttrs(t *testing.T) {
	opts := NewOptions(WithMargin("-100px"), WithDuration(time.Second))
	want := map[string]string{"once": "true", "margin": "-100px", "duration": "1000", "offset": "28", "stagger": "80"}
	if diff := cmp.Diff(want, opts.Config()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	attrs := opts.Attrs(opts.Delay(2))
	if diff := cmp.Diff(map[string]string{"data-reveal": "", "data-reveal-delay": "160"}, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if _, ok := opts.Attrs(0)["data-reveal-delay"]; ok {
		t.Fatalf("no delay attribute expected for the first element")
	}
}
