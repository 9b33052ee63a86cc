package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Stock is a market snapshot for one ticker as returned by the API.
// A fetched list is replaced wholesale on refresh, never merged.
type Stock struct {
	ID            int64           `json:"id" yaml:"id"`
	Symbol        string          `json:"symbol" yaml:"symbol"`
	CompanyName   string          `json:"companyName" yaml:"company_name"`
	CurrentPrice  decimal.Decimal `json:"currentPrice" yaml:"current_price"`
	ChangePercent float64         `json:"changePercent" yaml:"change_percent"`
	Volume        int64           `json:"volume" yaml:"volume"`
}

// UniqueBySymbol keeps the first stock seen for each symbol, preserving order.
func UniqueBySymbol(stocks []Stock) []Stock {
	seen := make(map[string]struct{}, len(stocks))
	out := make([]Stock, 0, len(stocks))
	for _, s := range stocks {
		key := strings.ToUpper(s.Symbol)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Holding is a user's position in one stock. Derived values are computed from
// quantity and prices on every call; any derived fields the server sends are
// not decoded.
type Holding struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"userId"`
	StockSymbol  string          `json:"stockSymbol"`
	CompanyName  string          `json:"companyName"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

func (h Holding) TotalInvestment() decimal.Decimal {
	return h.AveragePrice.Mul(decimal.NewFromInt(h.Quantity))
}

func (h Holding) CurrentValue() decimal.Decimal {
	return h.CurrentPrice.Mul(decimal.NewFromInt(h.Quantity))
}

func (h Holding) ProfitLoss() decimal.Decimal {
	return h.CurrentValue().Sub(h.TotalInvestment())
}

// ProfitLossPercent is zero when nothing was invested.
func (h Holding) ProfitLossPercent() decimal.Decimal {
	return Percent(h.ProfitLoss(), h.TotalInvestment())
}

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// TradeType is the side of a trade.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// ParseTradeType accepts buy/sell in any case.
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(strings.ToUpper(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade type %q: want BUY or SELL", s)
	}
}

// Verb is the past tense used in confirmations.
func (t TradeType) Verb() string {
	if t == Buy {
		return "bought"
	}
	return "sold"
}

// Label is the button-style action name: "Buy" or "Sell".
func (t TradeType) Label() string {
	if t == Buy {
		return "Buy"
	}
	return "Sell"
}

// TradeRequest is the payload of POST /trades. It is built fresh per
// submission and carries no price.
type TradeRequest struct {
	StockSymbol string    `json:"stockSymbol"`
	TradeType   TradeType `json:"tradeType"`
	Quantity    int64     `json:"quantity"`
	UserID      string    `json:"userId"`
}

// ServerSummary is the aggregate returned by the portfolio summary endpoint.
type ServerSummary struct {
	TotalValue      decimal.Decimal `json:"totalValue"`
	TotalProfitLoss decimal.Decimal `json:"totalProfitLoss"`
}

// Quote is an independent reference quote for a symbol.
type Quote struct {
	Price  string
	Raw    *float64
	ChgFmt string
	ChgRaw float64
	Name   string
}
