package api

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var document []byte

const documentPath = "/openapi.yaml"

// maxBodyBytes caps request bodies; contact details are short.
const maxBodyBytes = 16 << 10

// LoadDocument parses and validates the embedded OpenAPI document.
func LoadDocument(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("api: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("api: invalid openapi document: %w", err)
	}
	return doc, nil
}

type validator struct {
	router routers.Router
}

func newValidator(doc *openapi3.T) (*validator, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("api: build openapi router: %w", err)
	}
	return &validator{router: router}, nil
}

// middleware rejects requests that do not match the OpenAPI document. Paths
// are matched relative to the mount point so the API can live under any
// prefix.
func (v *validator) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := relativePath(r)
		if rel == documentPath {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeProblem(w, http.StatusRequestEntityTooLarge, "body_too_large", err)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		check := r.Clone(r.Context())
		check.URL.Path = rel
		check.URL.RawPath = ""
		check.Body = http.NoBody
		check.GetBody = nil
		if len(body) > 0 {
			check.Body = io.NopCloser(bytes.NewReader(body))
		}

		route, params, err := v.router.FindRoute(check)
		switch {
		case err == routers.ErrMethodNotAllowed:
			writeProblem(w, http.StatusMethodNotAllowed, "method_not_allowed", err)
			return
		case err != nil:
			writeProblem(w, http.StatusNotFound, "not_found", err)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    check,
			PathParams: params,
			Route:      route,
			Options:    &openapi3filter.Options{},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeProblem(w, http.StatusBadRequest, "invalid_request", err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func relativePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	return r.URL.Path
}
