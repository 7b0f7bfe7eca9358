// Package themes describes the visual variants of the landing page as
// go-theme manifests and turns a selection into the renderer configuration
// consumed by every renderer.
package themes

import (
	"fmt"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Info summarises a registered theme for listings.
type Info struct {
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Description    string   `json:"description,omitempty"`
	DefaultVariant string   `json:"defaultVariant"`
	Variants       []string `json:"variants"`
}

// Registry stores manifests and resolves theme/variant selections. It
// satisfies theme.ThemeSelector.
type Registry struct {
	mu           sync.RWMutex
	manifests    map[string]*theme.Manifest
	info         map[string]Info
	provider     manifestProvider
	defaultTheme string
}

var _ theme.ThemeSelector = (*Registry)(nil)

// manifestProvider is the go-theme registry surface used here.
type manifestProvider interface {
	theme.ThemeProvider
	Register(manifest *theme.Manifest) error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		manifests: make(map[string]*theme.Manifest),
		info:      make(map[string]Info),
		provider:  theme.NewRegistry(),
	}
}

// Register adds a manifest. defaultVariant names the variant chosen when a
// selection leaves it blank; it may be empty when the manifest has no
// variants. The first registered theme becomes the default theme.
func (r *Registry) Register(manifest *theme.Manifest, defaultVariant, description string) error {
	if manifest == nil || manifest.Name == "" {
		return fmt.Errorf("themes: manifest name is required")
	}
	if defaultVariant != "" {
		if _, ok := manifest.Variants[defaultVariant]; !ok {
			return fmt.Errorf("%w: %q has no default variant %q", ErrUnknownVariant, manifest.Name, defaultVariant)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.manifests[manifest.Name]; exists {
		return fmt.Errorf("themes: theme %q already registered", manifest.Name)
	}
	if err := r.provider.Register(manifest); err != nil {
		return fmt.Errorf("themes: register %q: %w", manifest.Name, err)
	}

	variants := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		variants = append(variants, name)
	}
	sort.Strings(variants)

	r.manifests[manifest.Name] = manifest
	r.info[manifest.Name] = Info{
		Name:           manifest.Name,
		Version:        manifest.Version,
		Description:    description,
		DefaultVariant: defaultVariant,
		Variants:       variants,
	}
	if r.defaultTheme == "" {
		r.defaultTheme = manifest.Name
	}
	return nil
}

// SetDefault changes the theme used for blank selections.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.manifests[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	r.defaultTheme = name
	return nil
}

// Select resolves name and variant, falling back to the defaults when either
// is blank.
func (r *Registry) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultTheme
	}
	manifest, ok := r.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant == "" {
		variant = r.info[name].DefaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// List returns every theme sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.info))
	for _, info := range r.info {
		info.Variants = append([]string(nil), info.Variants...)
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns the default theme name.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultTheme
}

// Provider exposes the underlying go-theme registry.
func (r *Registry) Provider() theme.ThemeProvider {
	return r.provider
}
