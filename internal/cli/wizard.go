package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/renderers/tui"
)

func newWizardCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Answer the qualification wizard in the terminal and print the lead",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch tui.OutputFormat(format) {
			case tui.OutputFormatJSON, tui.OutputFormatPrettyText:
			default:
				return fmt.Errorf("cli: unknown output format %q", format)
			}
			built, err := a.buildSite()
			if err != nil {
				return err
			}

			sink, closeSink, err := a.leadSink()
			if err != nil {
				return err
			}
			defer closeSink()

			terminal := tui.New(
				tui.WithPromptDriver(a.prompts),
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithSink(sink),
				tui.WithTheme(tui.Theme{InfoPrefix: "» ", ErrorPrefix: "✗ "}),
			)
			if err := built.registry.Register(terminal); err != nil {
				return err
			}

			out, err := built.orch.Generate(cmd.Context(), orchestrator.Request{Renderer: tui.Name})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(tui.OutputFormatJSON), "lead output format (json, pretty)")
	return cmd
}
