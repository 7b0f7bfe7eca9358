package themes

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

//go:embed data/themes.yaml
var embedded embed.FS

type fileDocument struct {
	Default string          `yaml:"default"`
	Themes  []themeDocument `yaml:"themes"`
}

type assetsDocument struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantDocument struct {
	Description string            `yaml:"description"`
	Tokens      map[string]string `yaml:"tokens"`
	Templates   map[string]string `yaml:"templates"`
	Assets      assetsDocument    `yaml:"assets"`
}

type themeDocument struct {
	Name           string                     `yaml:"name"`
	Version        string                     `yaml:"version"`
	Description    string                     `yaml:"description"`
	DefaultVariant string                     `yaml:"defaultVariant"`
	Tokens         map[string]string          `yaml:"tokens"`
	Templates      map[string]string          `yaml:"templates"`
	Assets         assetsDocument             `yaml:"assets"`
	Variants       map[string]variantDocument `yaml:"variants"`
}

func (d themeDocument) manifest() *theme.Manifest {
	manifest := &theme.Manifest{
		Name:      d.Name,
		Version:   d.Version,
		Tokens:    d.Tokens,
		Templates: d.Templates,
		Assets:    theme.Assets{Prefix: d.Assets.Prefix, Files: d.Assets.Files},
	}
	if len(d.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(d.Variants))
		for name, variant := range d.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest
}

// Parse builds a registry from a themes document.
func Parse(data []byte, source string) (*Registry, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("themes: file %s is empty", source)
	}
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("themes: parse %s: %w", source, err)
	}
	if len(doc.Themes) == 0 {
		return nil, fmt.Errorf("themes: %s defines no themes", source)
	}

	registry := NewRegistry()
	for _, entry := range doc.Themes {
		if err := registry.Register(entry.manifest(), entry.DefaultVariant, entry.Description); err != nil {
			return nil, fmt.Errorf("themes: %s: %w", source, err)
		}
	}
	if doc.Default != "" {
		if err := registry.SetDefault(doc.Default); err != nil {
			return nil, fmt.Errorf("themes: %s: %w", source, err)
		}
	}
	return registry, nil
}

// LoadFile reads themes from path, or the embedded set when path is blank.
func LoadFile(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("themes: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Default returns the bundled landing page themes.
func Default() (*Registry, error) {
	data, err := fs.ReadFile(embedded, "data/themes.yaml")
	if err != nil {
		return nil, fmt.Errorf("themes: read embedded themes: %w", err)
	}
	return Parse(data, "themes.yaml")
}

// MustDefault is Default for init-time wiring.
func MustDefault() *Registry {
	registry, err := Default()
	if err != nil {
		panic(err)
	}
	return registry
}
