package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/komsit37/papertrade/pkg/pt/columns"
	"github.com/komsit37/papertrade/pkg/pt/filter"
	"github.com/komsit37/papertrade/pkg/pt/market"
	"github.com/komsit37/papertrade/pkg/pt/pipeline"
	"github.com/komsit37/papertrade/pkg/pt/render"
	"github.com/komsit37/papertrade/pkg/pt/route"
	"github.com/komsit37/papertrade/pkg/pt/source"
)

const clearScreen = "\033[H\033[2J"

func (a *app) dashboardCmd() *cobra.Command {
	var (
		watch  bool
		asJSON bool
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show top gainers, top losers and most active stocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.gate(route.Dashboard); err != nil {
				return err
			}
			agg := market.NewAggregator(a.client, a.logger)

			show := func(snap market.Snapshot) error {
				if asJSON {
					return render.DashboardJSON(a.out, snap, pretty)
				}
				render.Dashboard(a.out, snap, a.cfg.Color)
				return nil
			}

			if !watch {
				if err := agg.Refresh(cmd.Context()); err != nil {
					return fmt.Errorf("load market data: %w", err)
				}
				return show(agg.Snapshot())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			p := &market.Poller{
				Agg:      agg,
				Interval: a.cfg.RefreshInterval,
				OnRefresh: func(snap market.Snapshot, err error) {
					if err != nil {
						// previous snapshot stays on screen
						a.logger.Warn("refresh failed", "error", err)
						return
					}
					if !asJSON {
						fmt.Fprint(a.out, clearScreen)
					}
					if err := show(snap); err != nil {
						a.logger.Error("render dashboard", "error", err)
					}
				},
			}
			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	f.BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func (a *app) marketCmd() *cobra.Command {
	var (
		search  string
		expr    string
		cols    string
		sets    string
		format  string
		asJSON  bool
		pretty  bool
		fromYML string
	)
	cmd := &cobra.Command{
		Use:   "market",
		Short: "List all stocks, optionally searched by symbol or company name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.gate(route.Market); err != nil {
				return err
			}

			var f filter.Filter
			if expr != "" {
				parsed, err := filter.Parse(expr)
				if err != nil {
					return fmt.Errorf("invalid --filter: %w", err)
				}
				f = parsed
			}

			var explicit []string
			if sets != "" {
				expanded, err := columns.ExpandSets(splitList(sets))
				if err != nil {
					return err
				}
				explicit = append(explicit, expanded...)
			}
			explicit = append(explicit, splitList(cols)...)
			if a.cfg.RefQuotes && len(explicit) == 0 {
				explicit = append(append(explicit, columns.Sets["default"]...), columns.Sets["ref"]...)
			}

			if asJSON {
				format = "json"
			}
			r, ok := render.ByName(format)
			if !ok {
				return fmt.Errorf("unknown format %q (table, json, syms)", format)
			}

			var (
				src  source.Source = market.Listing{Agg: market.NewAggregator(a.client, a.logger), Search: search}
				spec any
			)
			if fromYML != "" {
				src, spec = source.YAMLSource{}, fromYML
				if search != "" {
					f = filter.NewSubstrCI(search)
				}
			}

			var svc columns.Services
			if columns.NeedsQuotes(columns.Compute(explicit)) {
				svc.Quotes = a.quotes()
			}

			runner := &pipeline.Runner{Source: src, Renderer: r, Writer: a.out}
			return runner.Execute(cmd.Context(), spec, pipeline.ExecuteOptions{
				Columns:     explicit,
				Filter:      f,
				Color:       a.cfg.Color,
				PrettyJSON:  pretty,
				MaxColWidth: a.cfg.MaxColWidth,
				Services:    svc,
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&search, "search", "s", "", "case-insensitive substring of symbol or company name")
	fl.StringVar(&expr, "filter", "", "filter: AAPL,MSFT | T* | /^A/ | substring")
	fl.StringVarP(&cols, "columns", "c", "", "comma-separated columns: sym,company,price,chg%,volume,ref,drift%")
	fl.StringVar(&sets, "sets", "", "comma-separated column sets: default,price,ref")
	fl.StringVarP(&format, "format", "f", "table", "output format: table, json, syms")
	fl.BoolVar(&asJSON, "json", false, "shorthand for --format json")
	fl.BoolVar(&pretty, "pretty", false, "indent JSON output")
	fl.StringVar(&fromYML, "from", "", "read stocks from a YAML snapshot instead of the API")
	cmd.MarkFlagsMutuallyExclusive("search", "filter")
	return cmd
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
