package testsupport

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-leadwizard/pkg/catalog"
	"github.com/goliatone/go-leadwizard/pkg/model"
)

// MustCatalog returns the embedded catalog, failing the test when it does not
// load.
func MustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

// Steps returns the embedded qualification steps.
func Steps(t *testing.T) []model.Step {
	t.Helper()
	return MustCatalog(t).Wizard.Steps
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// Clock is a settable time source for code that accepts a func() time.Time.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Add moves the clock forward by d.
func (c *Clock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
