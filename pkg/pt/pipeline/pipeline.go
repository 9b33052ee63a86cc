package pipeline

import (
	"context"
	"io"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/filter"
	"github.com/komsit37/papertrade/pkg/pt/render"
	"github.com/komsit37/papertrade/pkg/pt/source"
)

// Runner loads a stock list, narrows it and hands it to a renderer.
type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Writer   io.Writer
}

type ExecuteOptions struct {
	Columns     []string
	Filter      filter.Filter
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Services    columns.Services
}

func (r *Runner) Execute(ctx context.Context, spec any, opts ExecuteOptions) error {
	stocks, err := r.Source.Load(ctx, spec)
	if err != nil {
		return err
	}

	var filt filter.Filter = filter.Always(true)
	if opts.Filter != nil {
		filt = opts.Filter
	}
	stocks = filter.Stocks(stocks, filt)

	return r.Renderer.Render(ctx, r.Writer, stocks, render.RenderOptions{
		Columns:     opts.Columns,
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
		Services:    opts.Services,
	})
}
