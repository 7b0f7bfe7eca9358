package leadwizard

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

func TestGenerateHTMLDefaults(t *testing.T) {
	out, err := GenerateHTML(context.Background(), "", "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`id="get-started"`, "your role?", "CEO / Founder"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestGenerateHTMLUnknownTheme(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), "", "nope", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestNewWizardUsesCatalogSteps(t *testing.T) {
	w, err := NewWizard()
	if err != nil {
		t.Fatalf("new wizard: %v", err)
	}
	defer w.Close()
	if got := w.State(); got.Phase != model.PhaseInProgress || got.StepIndex != 0 {
		t.Fatalf("unexpected initial state %+v", got)
	}
	if len(w.Snapshot().Steps) != 4 {
		t.Fatalf("expected four steps, got %d", len(w.Snapshot().Steps))
	}
}

func TestAssetsFSContainsRuntime(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "js/leadwizard.js")
	if err != nil {
		t.Fatalf("expected runtime script to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected runtime script content")
	}
	if _, err := fs.ReadFile(AssetsFS(), "css/leadwizard.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}

func TestEmbeddedTemplatesExposePartials(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "partials/wizard.tmpl"); err != nil {
		t.Fatalf("expected wizard partial: %v", err)
	}
}
