package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadwizard/components/headline"
	"github.com/goliatone/go-leadwizard/internal/api"
	"github.com/goliatone/go-leadwizard/internal/metrics"
	"github.com/goliatone/go-leadwizard/internal/server"
	"github.com/goliatone/go-leadwizard/internal/session"
	"github.com/goliatone/go-leadwizard/pkg/leads"
	"github.com/goliatone/go-leadwizard/pkg/typewriter"
	"github.com/goliatone/go-leadwizard/pkg/wizard"
)

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and the wizard endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Address = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	built, err := a.buildSite()
	if err != nil {
		return err
	}

	sink, closeSink, err := a.leadSink()
	if err != nil {
		return err
	}
	defer closeSink()

	var funnel *metrics.Funnel
	if cfg.Metrics.Enabled {
		funnel = metrics.New()
	}
	limiter := session.NewLimiter(cfg.Wizard.SubmitRate, cfg.Wizard.SubmitBurst)
	steps := built.catalog.Wizard.Steps

	storeOpts := []session.Option{
		session.WithTTL(cfg.Wizard.SessionTTL),
		session.WithLogger(a.logger),
		session.WithEvictHook(limiter.Forget),
	}
	if funnel != nil {
		storeOpts = append(storeOpts, session.WithActiveHook(func(n int) { funnel.ActiveSessions.Set(float64(n)) }))
	}
	store := session.NewStore(func(id string) (*wizard.Wizard, error) {
		opts := []wizard.Option{
			wizard.WithSession(id),
			wizard.WithAdvanceDelay(cfg.Wizard.AdvanceDelay),
			wizard.WithSink(sink),
			wizard.WithObserver(transitionLogger(a.logger)),
		}
		if funnel != nil {
			opts = append(opts, wizard.WithObserver(funnel.Observer()))
		}
		return wizard.New(steps, opts...)
	}, storeOpts...)
	defer store.Close()

	sweeper, err := session.NewSweeper(store, cfg.Wizard.SweepSchedule, a.logger)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = sweeper.Stop(stopCtx)
	}()

	apiOpts := []api.Option{api.WithLimiter(limiter), api.WithLogger(a.logger)}
	if funnel != nil {
		apiOpts = append(apiOpts, api.WithFunnel(funnel))
	}
	jsonAPI, err := api.New(ctx, store, steps, apiOpts...)
	if err != nil {
		return err
	}

	timings := typewriter.DefaultTimings()
	srvOpts := []server.Option{
		server.WithLogger(a.logger),
		server.WithRenderer(cfg.Renderer),
		server.WithTheme(cfg.Theme, cfg.Variant),
		server.WithBasePath(cfg.BasePath),
		server.WithLimiter(limiter),
		server.WithAPI(jsonAPI.Handler()),
		server.WithHeadline(headline.WithPhrases(built.catalog.Hero.Phrases), headline.WithTimings(timings)),
	}
	if funnel != nil {
		srvOpts = append(srvOpts, server.WithMetrics(funnel, cfg.Metrics.Path))
	}
	srv, err := server.New(built.orch, store, srvOpts...)
	if err != nil {
		return err
	}

	if err := srv.Run(ctx, cfg.Address, server.Timeouts{
		Read:     cfg.ReadTimeout,
		Write:    cfg.WriteTimeout,
		Shutdown: cfg.ShutdownTimeout,
	}); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// leadSink logs every lead and, when LEADWIZARD_LEADS_FILE is set, appends
// it to that file as a JSON line.
func (a *app) leadSink() (leads.Sink, func(), error) {
	logSink := leads.NewLogSink(a.logger)
	path := a.cfg.Wizard.LeadsFile
	if path == "" {
		return logSink, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cli: open leads file: %w", err)
	}
	return leads.Multi(logSink, leads.NewWriterSink(file)), func() { _ = file.Close() }, nil
}

func transitionLogger(logger zerolog.Logger) wizard.Observer {
	return func(evt wizard.Event) {
		event := logger.Debug().
			Str("session", evt.Session).
			Str("event", string(evt.Kind)).
			Str("phase", evt.State.Phase.String()).
			Int("step_index", evt.State.StepIndex)
		if evt.Step != "" {
			event = event.Str("step", evt.Step).Str("option", evt.Option)
		}
		if evt.Err != nil {
			event = event.Err(evt.Err)
		}
		event.Msg("wizard transition")
	}
}
