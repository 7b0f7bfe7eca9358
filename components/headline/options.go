package headline

import (
	"net/http"

	"github.com/goliatone/go-leadwizard/pkg/typewriter"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	FramesParam   string
	DefaultFrames int
	MaxFrames     int
	Guard         GuardFunc
	Timings       typewriter.Timings

	Phrases []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/api/headline",
		FramesParam:   "frames",
		DefaultFrames: 64,
		MaxFrames:     512,
		Timings:       typewriter.DefaultTimings(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultFrames <= 0 {
		opts.DefaultFrames = 64
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 512
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/headline"
	}
	if opts.FramesParam == "" {
		opts.FramesParam = "frames"
	}
	defaults := typewriter.DefaultTimings()
	if opts.Timings.Type <= 0 {
		opts.Timings.Type = defaults.Type
	}
	if opts.Timings.Delete <= 0 {
		opts.Timings.Delete = defaults.Delete
	}
	if opts.Timings.Dwell <= 0 {
		opts.Timings.Dwell = defaults.Dwell
	}
	if opts.Phrases != nil {
		opts.Phrases = append([]string{}, opts.Phrases...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithFramesParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FramesParam = name
	}
}

func WithDefaultFrames(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultFrames = n
	}
}

func WithMaxFrames(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxFrames = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithTimings(t typewriter.Timings) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timings = t
	}
}

func WithPhrases(phrases []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if phrases == nil {
			o.Phrases = nil
			return
		}
		o.Phrases = append([]string{}, phrases...)
	}
}

func clampFrames(n int, opts Options) int {
	if n < 0 {
		return 0
	}
	if n == 0 {
		n = opts.DefaultFrames
	}
	if opts.MaxFrames > 0 && n > opts.MaxFrames {
		return opts.MaxFrames
	}
	return n
}
