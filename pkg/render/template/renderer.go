package template

import (
	"io"
)

// TemplateRenderer is the contract renderers depend on. RenderTemplate returns
// the output and also copies it to each writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
