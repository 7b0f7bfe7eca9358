package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadwizard/pkg/renderers/tui"
	"github.com/goliatone/go-leadwizard/pkg/typewriter"
)

func newHeadlineCommand(a *app) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "headline",
		Short: "Play the rotating hero headline in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			built, err := a.buildSite()
			if err != nil {
				return err
			}
			hero := built.catalog.Hero
			presenter, err := typewriter.New(hero.Phrases)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return tui.PlayHeadline(ctx, cmd.OutOrStdout(), hero.Lead, presenter)
		},
	}
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "stop after this long (default until interrupted)")
	return cmd
}
