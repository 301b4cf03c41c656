// Package render writes dashboard views to a terminal or as JSON.
package render

import (
	"io"

	"github.com/aristath/stockfolio/internal/modules/dashboard"
)

// Renderer renders a dashboard view to an output writer.
type Renderer interface {
	Render(w io.Writer, view dashboard.View, opts Options) error
}

// Options controls rendering
type Options struct {
	Color      bool
	PrettyJSON bool
}

// New returns the JSON renderer when asJSON is set, the table renderer otherwise
func New(asJSON bool) Renderer {
	if asJSON {
		return NewJSONRenderer()
	}
	return NewTableRenderer()
}
