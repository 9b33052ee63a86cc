package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// symsRenderer prints all symbols in a single comma-separated line.
type symsRenderer struct{}

func NewSymsRenderer() Renderer {
	return symsRenderer{}
}

func (symsRenderer) Render(_ context.Context, w io.Writer, stocks []types.Stock, _ RenderOptions) error {
	symbols := make([]string, 0, len(stocks))
	for _, s := range stocks {
		sym := strings.TrimSpace(s.Symbol)
		if sym == "" {
			continue
		}
		symbols = append(symbols, sym)
	}
	_, err := fmt.Fprintln(w, strings.Join(symbols, ","))
	return err
}
