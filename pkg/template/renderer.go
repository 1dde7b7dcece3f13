// Package template defines the rendering seam between the composition engine
// and the underlying template machinery, mirroring the
// github.com/goliatone/go-template engine contract.
package template

import (
	"io"
)

// Renderer is the engine contract the composer relies on. Implementations
// are stateless after construction; loading happens against the file system
// they were built with.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
