package orchestrator

import (
	"context"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

// Transformer mutates a built page before rendering. Implementations can
// inject metadata, rewrite copy or reorder content.
type Transformer interface {
	Transform(ctx context.Context, page *model.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *model.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *model.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}

// MetaTransformer merges fixed meta tags into every page, keeping values the
// request already set.
func MetaTransformer(meta map[string]string) Transformer {
	return TransformerFunc(func(_ context.Context, page *model.Page) error {
		if len(meta) == 0 {
			return nil
		}
		if page.Meta == nil {
			page.Meta = make(map[string]string, len(meta))
		}
		for key, value := range meta {
			if _, exists := page.Meta[key]; !exists {
				page.Meta[key] = value
			}
		}
		return nil
	})
}
