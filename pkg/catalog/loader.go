package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embedded embed.FS

// DefaultFile is the name of the embedded catalog.
const DefaultFile = "catalog.yaml"

// EmbeddedFS exposes the bundled catalog data.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the embedded catalog.
func Default() (*Catalog, error) {
	return LoadFS(EmbeddedFS(), DefaultFile)
}

// MustDefault is Default for init-time wiring.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile reads a catalog from disk. An empty path returns the default.
func LoadFile(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads name from fsys.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes JSON or YAML, sanitises icon markup and validates the result.
func Parse(data []byte, source string) (*Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("catalog: file %s is empty", source)
	}

	var c Catalog
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", source, err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", source, err)
		}
	}
	c.Source = source

	if err := c.normalise(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", source, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", source, err)
	}
	return &c, nil
}

func (c *Catalog) normalise() error {
	icons := make(map[string]string, len(c.Icons))
	for name, raw := range c.Icons {
		cleaned := sanitizeIcon(raw)
		if cleaned == "" {
			return fmt.Errorf("%w: icon %q is empty after sanitising", ErrInvalid, name)
		}
		icons[name] = cleaned
	}
	c.Icons = icons

	for i := range c.Products.Items {
		c.Products.Items[i].IconSVG = icons[c.Products.Items[i].Icon]
	}
	for i := range c.Trust {
		c.Trust[i].IconSVG = icons[c.Trust[i].Icon]
	}
	if c.Site.Monogram == "" {
		c.Site.Monogram = monogram(c.Site.Name)
	}
	return nil
}

func monogram(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
