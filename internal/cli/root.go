// Package cli implements the leadwizard command line: serve the landing page,
// export it as static files, run the wizard or the headline in a terminal and
// list the available themes.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadwizard/internal/config"
	"github.com/goliatone/go-leadwizard/internal/logging"
	"github.com/goliatone/go-leadwizard/pkg/renderers/tui"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	envFile   string
	logLevel  string
	logFormat string
	catalog   string
	themes    string
	templates string
	theme     string
	variant   string
	renderer  string
	basePath  string

	cfg    *config.Config
	logger zerolog.Logger
	out    io.Writer
	errOut io.Writer

	// prompts replaces the interactive survey driver in tests.
	prompts tui.PromptDriver
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{out: os.Stdout, errOut: os.Stderr})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "leadwizard",
		Short: "Landing page with a lead qualification wizard",
		Long: `leadwizard serves a single page marketing site whose get-started section
is a multi-step qualification wizard. The same page can be exported as static
files, and the wizard can be run in a terminal.

Settings come from LEADWIZARD_* environment variables, optionally loaded from
a .env file, and can be overridden with flags.`,
		Version:           fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console)")
	flags.StringVar(&a.catalog, "catalog", "", "content catalog YAML file (default embedded)")
	flags.StringVar(&a.themes, "themes", "", "themes YAML file (default embedded)")
	flags.StringVar(&a.templates, "templates-dir", "", "directory of template overrides")
	flags.StringVar(&a.theme, "theme", "", "default theme")
	flags.StringVar(&a.variant, "variant", "", "default theme variant")
	flags.StringVar(&a.renderer, "renderer", "", "page renderer (vanilla, components)")
	flags.StringVar(&a.basePath, "base-path", "", "URL prefix the site is served under")

	root.AddCommand(
		newServeCommand(a),
		newExportCommand(a),
		newWizardCommand(a),
		newHeadlineCommand(a),
		newThemesCommand(a),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("log-level", &cfg.Log.Level, a.logLevel)
	override("log-format", &cfg.Log.Format, a.logFormat)
	override("catalog", &cfg.CatalogPath, a.catalog)
	override("themes", &cfg.ThemesPath, a.themes)
	override("templates-dir", &cfg.TemplatesDir, a.templates)
	override("theme", &cfg.Theme, a.theme)
	override("variant", &cfg.Variant, a.variant)
	override("renderer", &cfg.Renderer, a.renderer)
	override("base-path", &cfg.BasePath, a.basePath)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: a.errOut})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
