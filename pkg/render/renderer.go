package render

import (
	"context"

	"github.com/goliatone/go-leadwizard/pkg/model"
)

// Renderer turns a landing page model into bytes (HTML, plain text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
