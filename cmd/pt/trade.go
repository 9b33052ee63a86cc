package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/market"
	"github.com/komsit37/papertrade/pkg/pt/render"
	"github.com/komsit37/papertrade/pkg/pt/route"
	"github.com/komsit37/papertrade/pkg/pt/trade"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

func (a *app) tradeCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "trade buy|sell SYMBOL QUANTITY",
		Short: "Buy or sell shares at the current market price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.gate(route.Market)
			if err != nil {
				return err
			}
			tt, err := types.ParseTradeType(args[0])
			if err != nil {
				return err
			}

			agg := market.NewAggregator(a.client, a.logger)
			if err := agg.RefreshStocks(cmd.Context()); err != nil {
				return fmt.Errorf("load stocks: %w", err)
			}

			form := trade.NewForm()
			form.Type = tt
			form.Quantity = args[2]
			if s, ok := agg.Lookup(args[1]); ok {
				form.Select(s)
			} else {
				a.logger.Debug("symbol not listed", "symbol", args[1])
			}

			render.TradePreview(a.out, form)
			if form.Stock != nil && a.cfg.RefQuotes {
				d, err := trade.CheckDrift(cmd.Context(), a.quotes(), *form.Stock)
				if err != nil {
					a.logger.Warn("reference quote unavailable", "symbol", form.Stock.Symbol, "error", err)
				} else {
					fmt.Fprintf(a.out, "Reference price %s (listed price is %s from it)\n",
						columns.Money(d.Reference), columns.DecimalPercent(d.Percent))
				}
			}

			if dryRun {
				if _, err := form.Validate(user); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Dry run: would %s\n", strings.ToLower(form.SubmitLabel()))
				return nil
			}

			desk := trade.NewDesk(a.client, trade.NewFlash(a.cfg.NoticeTTL), a.logger)
			notice, err := desk.Submit(cmd.Context(), &form, user)
			render.Notice(a.out, notice, a.cfg.Color)
			if err != nil {
				// the notice already carries the message
				cmd.SilenceErrors = true
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and preview without sending the trade")
	return cmd
}
