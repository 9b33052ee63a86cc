package source

import (
	"context"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Source loads a stock list from a specification (e.g., filepath).
type Source interface {
	Load(ctx context.Context, spec any) ([]types.Stock, error)
}
