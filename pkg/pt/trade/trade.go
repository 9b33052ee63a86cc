// Package trade validates and submits buy/sell orders and keeps the
// resulting user notice.
package trade

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/komsit37/papertrade/pkg/pt/api"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

const DefaultQuantity = "1"

// DefaultNoticeTTL is how long a trade notice stays visible.
const DefaultNoticeTTL = 5 * time.Second

const (
	msgInvalid     = "Please select a stock and enter valid quantity"
	msgNoUser      = "Please log in to trade"
	msgFailedTrade = "Trade failed. Please try again."
)

// ValidationError is a local form error; no request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Form is the trade entry state. Quantity is kept as typed text so that a
// half-edited value can be displayed and rejected.
type Form struct {
	Stock    *types.Stock
	Type     types.TradeType
	Quantity string
}

// NewForm returns a form with no stock, BUY, and quantity 1.
func NewForm() Form {
	return Form{Type: types.Buy, Quantity: DefaultQuantity}
}

// Reset restores the defaults while keeping the trade side.
func (f *Form) Reset() {
	f.Stock = nil
	f.Quantity = DefaultQuantity
}

// Select chooses the stock to trade.
func (f *Form) Select(s types.Stock) { f.Stock = &s }

// Qty parses the quantity; ok is false unless it is a positive integer.
func (f Form) Qty() (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(f.Quantity), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Validate checks the form for user without touching the network.
func (f Form) Validate(user string) (types.TradeRequest, error) {
	qty, ok := f.Qty()
	if f.Stock == nil || !ok {
		return types.TradeRequest{}, &ValidationError{Message: msgInvalid}
	}
	if strings.TrimSpace(user) == "" {
		return types.TradeRequest{}, &ValidationError{Message: msgNoUser}
	}
	tt := f.Type
	if tt == "" {
		tt = types.Buy
	}
	return types.TradeRequest{
		StockSymbol: f.Stock.Symbol,
		TradeType:   tt,
		Quantity:    qty,
		UserID:      user,
	}, nil
}

// Total is the cost or proceeds preview: snapshot price times quantity. It is
// display-only; the server prices the trade at execution.
func (f Form) Total() decimal.Decimal {
	qty, ok := f.Qty()
	if f.Stock == nil || !ok {
		return decimal.Zero
	}
	return f.Stock.CurrentPrice.Mul(decimal.NewFromInt(qty))
}

// SubmitLabel reads like "Buy 3 Shares" or "Sell 1 Share". A quantity that
// does not parse is shown as DefaultQuantity.
func (f Form) SubmitLabel() string {
	q := DefaultQuantity
	noun := "Share"
	if n, ok := f.Qty(); ok {
		q = strconv.FormatInt(n, 10)
		if n > 1 {
			noun = "Shares"
		}
	}
	tt := f.Type
	if tt == "" {
		tt = types.Buy
	}
	return fmt.Sprintf("%s %s %s", tt.Label(), q, noun)
}

// Submitter is the API call a Desk makes.
type Submitter interface {
	CreateTrade(ctx context.Context, req types.TradeRequest) error
}

// Desk runs the submit workflow for one form and reports through a Flash.
type Desk struct {
	API    Submitter
	Flash  *Flash
	Logger *slog.Logger
}

func NewDesk(s Submitter, flash *Flash, logger *slog.Logger) *Desk {
	if logger == nil {
		logger = slog.Default()
	}
	if flash == nil {
		flash = NewFlash(DefaultNoticeTTL)
	}
	return &Desk{API: s, Flash: flash, Logger: logger.With("component", "trade")}
}

// Submit validates form, sends the trade, and posts the outcome notice. On
// success the form is reset. The returned notice is the one posted.
func (d *Desk) Submit(ctx context.Context, form *Form, user string) (Notice, error) {
	req, err := form.Validate(user)
	if err != nil {
		return d.Flash.Error(err.Error()), err
	}

	if err := d.API.CreateTrade(ctx, req); err != nil {
		d.Logger.Warn("trade failed", "symbol", req.StockSymbol, "type", req.TradeType, "quantity", req.Quantity, "error", err)
		msg, ok := api.ServerMessage(err)
		if !ok {
			msg = msgFailedTrade
		}
		return d.Flash.Error(msg), err
	}

	msg := fmt.Sprintf("Successfully %s %d shares of %s!", req.TradeType.Verb(), req.Quantity, req.StockSymbol)
	d.Logger.Info("trade submitted", "symbol", req.StockSymbol, "type", req.TradeType, "quantity", req.Quantity)
	form.Reset()
	return d.Flash.Success(msg), nil
}
