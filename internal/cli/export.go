package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadwizard/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		outDir   string
		targets  []string
		trailing bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the landing page as static files, one page per theme variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("trailing-slash") {
				a.cfg.TrailingSlash = trailing
			}
			parsed, err := parseTargets(targets)
			if err != nil {
				return err
			}
			built, err := a.buildSite()
			if err != nil {
				return err
			}

			result, err := export.Run(cmd.Context(), built.orch, built.themes, export.Options{
				OutDir:        outDir,
				TrailingSlash: a.cfg.TrailingSlash,
				Renderer:      a.cfg.Renderer,
				Default:       export.Target{Theme: a.cfg.Theme, Variant: a.cfg.Variant},
				Targets:       parsed,
				Logger:        a.logger,
			})
			if err != nil {
				return err
			}
			for _, file := range result.Files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "theme/variant to export (repeatable, default all)")
	cmd.Flags().BoolVar(&trailing, "trailing-slash", true, "write route/index.html instead of route.html")
	return cmd
}

func parseTargets(raw []string) ([]export.Target, error) {
	out := make([]export.Target, 0, len(raw))
	for _, value := range raw {
		name, variant, _ := strings.Cut(strings.TrimSpace(value), "/")
		if name == "" {
			return nil, fmt.Errorf("cli: invalid export target %q", value)
		}
		out = append(out, export.Target{Theme: name, Variant: variant})
	}
	return out, nil
}
