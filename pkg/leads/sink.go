// Package leads delivers submitted wizard payloads to the outside world. The
// landing page has no CRM of its own, so the provided sinks log, encode or
// record leads and can be composed with Multi.
package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

// Sink receives a lead once the contact details pass validation.
type Sink interface {
	Deliver(ctx context.Context, lead model.Lead) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, lead model.Lead) error

// Deliver calls f(ctx, lead).
func (f SinkFunc) Deliver(ctx context.Context, lead model.Lead) error {
	return f(ctx, lead)
}

// LogSink writes each lead as a structured info event.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a sink that logs through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "leads").Logger()}
}

func (s *LogSink) Deliver(ctx context.Context, lead model.Lead) error {
	answers := zerolog.Dict()
	keys := make([]string, 0, len(lead.Answers))
	for key := range lead.Answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		answers.Str(key, lead.Answers[key])
	}

	s.logger.Info().
		Str("session", lead.Session).
		Dict("answers", answers).
		Str("name", lead.Contact.Name).
		Str("company", lead.Contact.Company).
		Str("email", lead.Contact.Email).
		Time("submitted_at", lead.SubmittedAt).
		Msg("lead captured")
	return nil
}

// WriterSink encodes leads as JSON lines.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing newline-delimited JSON to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(ctx context.Context, lead model.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("leads: encode lead: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("leads: write lead: %w", err)
	}
	return nil
}

type multiSink []Sink

// Multi fans a lead out to every non-nil sink, joining their errors.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			out = append(out, sink)
		}
	}
	return out
}

func (m multiSink) Deliver(ctx context.Context, lead model.Lead) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Deliver(ctx, lead); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps delivered leads in memory for the lifetime of the process.
type Recorder struct {
	mu    sync.Mutex
	leads []model.Lead
}

func (r *Recorder) Deliver(_ context.Context, lead model.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.Answers = lead.Answers.Clone()
	r.leads = append(r.leads, lead)
	return nil
}

// Leads returns a snapshot of recorded leads.
func (r *Recorder) Leads() []model.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Lead(nil), r.leads...)
}
