package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-leadwizard/pkg/typewriter"
)

// HeadlinePrinter redraws a typewriter headline in place on one terminal
// line.
type HeadlinePrinter struct {
	mu     sync.Mutex
	w      io.Writer
	lead   string
	cursor string
}

// NewHeadlinePrinter writes frames to w prefixed by lead.
func NewHeadlinePrinter(w io.Writer, lead string) *HeadlinePrinter {
	return &HeadlinePrinter{w: w, lead: lead, cursor: "▌"}
}

// Print draws frame, replacing the previous one.
func (p *HeadlinePrinter) Print(frame typewriter.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lead != "" {
		fmt.Fprintf(p.w, "\r\033[2K%s %s%s", p.lead, frame.Text, p.cursor)
		return
	}
	fmt.Fprintf(p.w, "\r\033[2K%s%s", frame.Text, p.cursor)
}

// Done ends the animated line.
func (p *HeadlinePrinter) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}

// PlayHeadline animates presenter on w until ctx is done. Cancellation is
// the normal way to stop and is not reported as an error.
func PlayHeadline(ctx context.Context, w io.Writer, lead string, presenter *typewriter.Presenter) error {
	if presenter == nil {
		return errors.New("tui: headline presenter is nil")
	}
	printer := NewHeadlinePrinter(w, lead)
	err := presenter.Run(ctx, printer.Print)
	printer.Done()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
