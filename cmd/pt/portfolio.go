package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/komsit37/papertrade/pkg/pt/portfolio"
	"github.com/komsit37/papertrade/pkg/pt/render"
	"github.com/komsit37/papertrade/pkg/pt/route"
	"github.com/komsit37/papertrade/pkg/pt/types"
)

func (a *app) portfolioCmd() *cobra.Command {
	var (
		asJSON        bool
		pretty        bool
		serverSummary bool
	)
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show holdings, profit/loss and value distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.gate(route.Portfolio)
			if err != nil {
				return err
			}

			agg := portfolio.NewAggregator(a.client, a.logger)
			if err := agg.Load(cmd.Context(), user); err != nil {
				return fmt.Errorf("load portfolio: %w", err)
			}
			view := agg.View()

			// diagnostics only; totals are always computed from holdings
			var server *types.ServerSummary
			if serverSummary {
				s, err := a.client.PortfolioSummary(cmd.Context(), user)
				if err != nil {
					a.logger.Warn("server summary unavailable", "user", user, "error", err)
				} else {
					server = &s
				}
			}

			if asJSON {
				return render.PortfolioJSON(a.out, view, server, pretty)
			}
			render.Portfolio(a.out, view, a.cfg.Color)
			if server != nil {
				render.ServerSummary(a.out, *server)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&asJSON, "json", false, "print JSON")
	f.BoolVar(&pretty, "pretty", false, "indent JSON output")
	f.BoolVar(&serverSummary, "server-summary", false, "also fetch the server's own totals for comparison")
	return cmd
}
