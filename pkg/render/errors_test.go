package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-leadwizard/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	fields := []string{"name", "company", "email"}
	payload := map[string][]string{
		"/email":                 {"must be a valid email address"},
		"body.contact.name":      {" is required ", "is required"},
		"$.company":              {"is required"},
		"/contact/phone":         {"Should fall back to form errors"},
		"non_field_errors":       {"Form level error"},
		"":                       {"Unscoped form error"},
		"request/body/email[0]":  {"too long"},
		"/answers/role":          {"   "},
	}

	mapped := render.MapErrorPayload(fields, payload)

	wantFields := map[string][]string{
		"name":    {"is required"},
		"company": {"is required"},
		"email":   {"must be a valid email address", "too long"},
	}
	sorted := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(wantFields, mapped.Fields, sorted); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, sorted); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapped := render.MapErrorPayload([]string{"email"}, nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
