package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// YAMLSource loads a saved stock snapshot, for browsing the market offline.
// Two shapes are accepted:
//
//  1. a top-level list:  "- symbol: AAPL ..."
//  2. a map with a list: "stocks: [...]"
type YAMLSource struct{}

// Load expects spec to be a string filepath.
func (YAMLSource) Load(ctx context.Context, spec any) ([]types.Stock, error) { //nolint:revive // ctx reserved for future use
	path, ok := spec.(string)
	if !ok {
		return nil, fmt.Errorf("yaml source expects filepath string spec")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stocks, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stocks, nil
}

func parseYAML(data []byte) ([]types.Stock, error) {
	var stocks []types.Stock
	if err := yaml.Unmarshal(data, &stocks); err != nil {
		var alt struct {
			Stocks []types.Stock `yaml:"stocks"`
		}
		if err2 := yaml.Unmarshal(data, &alt); err2 != nil {
			return nil, err
		}
		stocks = alt.Stocks
	}
	for i := range stocks {
		stocks[i].Symbol = strings.ToUpper(strings.TrimSpace(stocks[i].Symbol))
		if stocks[i].Symbol == "" {
			return nil, fmt.Errorf("stock %d: missing symbol", i+1)
		}
	}
	return types.UniqueBySymbol(stocks), nil
}
