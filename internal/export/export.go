// Package export writes the landing page as static files: one page per theme
// variant plus the bundled stylesheet and runtime script. Static pages carry
// every wizard step so the runtime script drives the wizard without a server.
package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-leadwizard/pkg/orchestrator"
	"github.com/goliatone/go-leadwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-leadwizard/pkg/themes"
)

// Target is one theme variant to export.
type Target struct {
	Theme   string
	Variant string
}

// Route is the target's path below the export root.
func (t Target) Route() string {
	if t.Variant == "" {
		return t.Theme
	}
	return path.Join(t.Theme, t.Variant)
}

// Lister enumerates the available themes; *themes.Registry satisfies it.
type Lister interface {
	List() []themes.Info
	Default() string
}

// Options controls an export run.
type Options struct {
	// OutDir receives the files. It is created when missing.
	OutDir string
	// TrailingSlash writes route/index.html instead of route.html.
	TrailingSlash bool
	// Renderer names the page renderer. Blank uses the orchestrator default.
	Renderer string
	// Default is the theme variant written to the root index.html. Blank
	// fields use the theme selector defaults.
	Default Target
	// Targets restricts the export. Empty exports every theme variant.
	Targets []Target
	// Assets is copied below OutDir/assets. Nil uses the bundled assets.
	Assets fs.FS
	Logger zerolog.Logger
}

// Result lists written files relative to OutDir, sorted.
type Result struct {
	Files []string
}

// Run renders every target and copies the assets. Options.Default is also
// written to the root index.html.
func Run(ctx context.Context, orch *orchestrator.Orchestrator, lister Lister, opts Options) (*Result, error) {
	if orch == nil {
		return nil, errors.New("export: orchestrator is required")
	}
	if opts.OutDir == "" {
		return nil, errors.New("export: output directory is required")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", opts.OutDir, err)
	}

	targets := opts.Targets
	if len(targets) == 0 && lister != nil {
		targets = AllTargets(lister)
	}

	result := &Result{}
	root, err := orch.Generate(ctx, orchestrator.Request{
		Renderer:     opts.Renderer,
		ThemeName:    opts.Default.Theme,
		ThemeVariant: opts.Default.Variant,
	})
	if err != nil {
		return nil, fmt.Errorf("export: render index: %w", err)
	}
	if err := write(opts.OutDir, "index.html", root, result); err != nil {
		return nil, err
	}

	for _, target := range targets {
		out, err := orch.Generate(ctx, orchestrator.Request{
			Renderer:     opts.Renderer,
			ThemeName:    target.Theme,
			ThemeVariant: target.Variant,
		})
		if err != nil {
			return nil, fmt.Errorf("export: render %s: %w", target.Route(), err)
		}
		if err := write(opts.OutDir, PagePath(target.Route(), opts.TrailingSlash), out, result); err != nil {
			return nil, err
		}
		opts.Logger.Debug().Str("theme", target.Theme).Str("variant", target.Variant).Msg("page exported")
	}

	assets := opts.Assets
	if assets == nil {
		assets = vanilla.AssetsFS()
	}
	if err := copyAssets(assets, opts.OutDir, result); err != nil {
		return nil, err
	}

	sort.Strings(result.Files)
	opts.Logger.Info().Str("dir", opts.OutDir).Int("files", len(result.Files)).Msg("export complete")
	return result, nil
}

// AllTargets lists every theme variant, or the bare theme when it has none.
func AllTargets(lister Lister) []Target {
	var out []Target
	for _, info := range lister.List() {
		if len(info.Variants) == 0 {
			out = append(out, Target{Theme: info.Name})
			continue
		}
		variants := append([]string(nil), info.Variants...)
		sort.Strings(variants)
		for _, variant := range variants {
			out = append(out, Target{Theme: info.Name, Variant: variant})
		}
	}
	return out
}

// PagePath maps a route to its file, following the static export convention:
// route/index.html with trailing slashes, route.html without.
func PagePath(route string, trailingSlash bool) string {
	route = path.Clean("/" + route)
	if route == "/" {
		return "index.html"
	}
	route = route[1:]
	if trailingSlash {
		return path.Join(route, "index.html")
	}
	return route + ".html"
}

func copyAssets(assets fs.FS, outDir string, result *Result) error {
	return fs.WalkDir(assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(assets, name)
		if err != nil {
			return fmt.Errorf("export: read asset %s: %w", name, err)
		}
		return write(outDir, path.Join("assets", name), data, result)
	})
}

func write(outDir, rel string, data []byte, result *Result) error {
	target := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("export: create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", rel, err)
	}
	result.Files = append(result.Files, rel)
	return nil
}
