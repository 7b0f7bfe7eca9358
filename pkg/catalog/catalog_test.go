package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	keys := make([]string, 0, len(c.Wizard.Steps))
	for _, step := range c.Wizard.Steps {
		keys = append(keys, step.Key)
	}
	if diff := cmp.Diff([]string{"role", "challenge", "size", "timeline"}, keys); diff != "" {
		t.Fatalf("step keys mismatch (-want +got):\n%s", diff)
	}
	if len(c.Hero.Phrases) != 4 {
		t.Fatalf("expected four headline phrases, got %d", len(c.Hero.Phrases))
	}
	if c.Site.Monogram != "IL" {
		t.Fatalf("unexpected monogram %q", c.Site.Monogram)
	}

	agent, ok := c.Product("AgentOS")
	if !ok || !strings.Contains(agent.IconSVG, "<svg") {
		t.Fatalf("expected AgentOS icon to be resolved, got %q", agent.IconSVG)
	}

	recommended := c.Recommended(c.Solutions.Roles[1])
	names := make([]string, 0, len(recommended))
	for _, product := range recommended {
		names = append(names, product.Name)
	}
	if diff := cmp.Diff([]string{"AgentOS", "DataMind", "AutoFlow"}, names); diff != "" {
		t.Fatalf("recommended products mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultCatalogSupportsReferenceScenario(t *testing.T) {
	c := MustDefault()
	answers := map[string]string{
		"role":      "CEO / Founder",
		"challenge": "Too many manual processes slowing us down",
		"size":      "11–50 people",
		"timeline":  "ASAP (within weeks)",
	}
	for _, step := range c.Wizard.Steps {
		if !step.HasOption(answers[step.Key]) {
			t.Fatalf("step %q does not offer %q", step.Key, answers[step.Key])
		}
	}
}

func TestFooterColumns(t *testing.T) {
	c := MustDefault()
	columns := c.FooterColumns()
	labels := make([]string, 0, len(columns))
	for _, column := range columns {
		labels = append(labels, column.Label)
	}
	if diff := cmp.Diff([]string{"Products", "Solutions", "Company"}, labels); diff != "" {
		t.Fatalf("footer columns mismatch (-want +got):\n%s", diff)
	}
	if got := columns[0].Links[0]; got != (model.Link{Label: "AgentOS", Href: "#products"}) {
		t.Fatalf("unexpected product link %+v", got)
	}
}

func TestSanitizeIconRemovesScripts(t *testing.T) {
	got := sanitizeIcon(`  <svg viewBox="0 0 24 24" onload="alert(1)"><script>alert('x')</script><path d="M0 0h24v24H0z"/></svg>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onload") {
		t.Fatalf("expected script content to be stripped, got %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	base, err := os.ReadFile(filepath.Join("data", DefaultFile))
	if err != nil {
		t.Fatalf("read default: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(string) string
		message string
	}{
		{
			name:    "unknown product reference",
			mutate:  func(s string) string { return strings.Replace(s, "products: [DataMind, InsightPulse]", "products: [DataMind, Ghost]", 1) },
			message: `references unknown product "Ghost"`,
		},
		{
			name:    "duplicate step key",
			mutate:  func(s string) string { return strings.Replace(s, "key: timeline", "key: size", 1) },
			message: `duplicate key "size"`,
		},
		{
			name:    "unknown icon",
			mutate:  func(s string) string { return strings.Replace(s, "icon: shield", "icon: lock", 1) },
			message: `unknown icon "lock"`,
		},
		{
			name:    "script-only icon",
			mutate:  func(s string) string { return s + "  evil: '<script>alert(1)</script>'\n" },
			message: `icon "evil" is empty after sanitising`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(string(base))), "catalog.yaml")
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse([]byte("  \n"), "empty.yaml"); err == nil {
		t.Fatalf("expected empty file to fail")
	}
}

func TestLoadFileEmptyPathUsesDefault(t *testing.T) {
	c, err := LoadFile("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Source != DefaultFile {
		t.Fatalf("expected embedded source, got %q", c.Source)
	}
}
