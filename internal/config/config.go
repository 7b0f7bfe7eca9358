// Package config loads the leadwizard runtime configuration from the process
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name.
const Prefix = "LEADWIZARD_"

// Config holds all application configuration.
type Config struct {
	// Server settings
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	BasePath        string        `env:"BASE_PATH" envDefault:""`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Page settings
	Renderer      string `env:"RENDERER" envDefault:"vanilla"`
	Theme         string `env:"THEME" envDefault:""`
	Variant       string `env:"VARIANT" envDefault:""`
	CatalogPath   string `env:"CATALOG" envDefault:""`
	ThemesPath    string `env:"THEMES" envDefault:""`
	TemplatesDir  string `env:"TEMPLATES_DIR" envDefault:""`
	TrailingSlash bool   `env:"TRAILING_SLASH" envDefault:"true"`

	Wizard  WizardConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// WizardConfig holds the per-visitor wizard and session settings.
type WizardConfig struct {
	AdvanceDelay  time.Duration `env:"ADVANCE_DELAY" envDefault:"280ms"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepSchedule string        `env:"SWEEP_SCHEDULE" envDefault:"@every 1m"`
	SubmitRate    float64       `env:"SUBMIT_RATE" envDefault:"0.2"`
	SubmitBurst   int           `env:"SUBMIT_BURST" envDefault:"3"`
	LeadsFile     string        `env:"LEADS_FILE" envDefault:""`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `env:"METRICS" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

// Load reads envFiles (a missing file is not an error) and parses the
// environment. Variables already set in the process win over file values.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if strings.TrimSpace(file) == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return Parse(env.Options{Prefix: Prefix})
}

// Parse builds a Config from the environment described by opts. Tests pass
// opts.Environment to avoid touching the process environment.
func Parse(opts env.Options) (*Config, error) {
	if opts.Prefix == "" {
		opts.Prefix = Prefix
	}
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with.
func (c *Config) Validate() error {
	var problems []string
	if c.Wizard.AdvanceDelay < 0 {
		problems = append(problems, "advance delay must not be negative")
	}
	if c.Wizard.SessionTTL <= 0 {
		problems = append(problems, "session ttl must be positive")
	}
	if c.Wizard.SubmitRate < 0 {
		problems = append(problems, "submit rate must not be negative")
	}
	if c.Wizard.SubmitBurst < 0 {
		problems = append(problems, "submit burst must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
