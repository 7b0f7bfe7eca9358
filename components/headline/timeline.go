package headline

import (
	"time"

	"github.com/goliatone/go-leadwizard/pkg/typewriter"
)

// Entry is one headline frame and when it appears.
type Entry struct {
	Text     string `json:"text"`
	Phrase   int    `json:"phrase"`
	Deleting bool   `json:"deleting"`
	DelayMs  int64  `json:"delayMs"`
	AtMs     int64  `json:"atMs"`
}

// Timeline returns the first n frames a fresh presenter shows, starting with
// the empty initial frame. Each entry carries the delay that precedes it and
// its offset from the start.
func Timeline(phrases []string, timings typewriter.Timings, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}
	presenter, err := typewriter.New(phrases, typewriter.WithTimings(timings))
	if err != nil {
		return nil, err
	}

	first := presenter.Frame()
	out := make([]Entry, 0, n)
	out = append(out, Entry{Text: first.Text, Phrase: first.Phrase, Deleting: first.Deleting})

	var at time.Duration
	for len(out) < n {
		frame, delay := presenter.Step()
		at += delay
		out = append(out, Entry{
			Text:     frame.Text,
			Phrase:   frame.Phrase,
			Deleting: frame.Deleting,
			DelayMs:  delay.Milliseconds(),
			AtMs:     at.Milliseconds(),
		})
	}
	return out, nil
}
