package render

import (
	"context"
	"io"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Renderer renders a stock list to an output writer.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, stocks []types.Stock, opts RenderOptions) error
}

type RenderOptions struct {
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Services    columns.Services
}

// ByName returns the stock renderer for an output format name.
func ByName(name string) (Renderer, bool) {
	switch name {
	case "", "table":
		return NewTableRenderer(), true
	case "json":
		return NewJSONRenderer(), true
	case "syms":
		return NewSymsRenderer(), true
	default:
		return nil, false
	}
}
