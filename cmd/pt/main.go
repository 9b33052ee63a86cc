package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/komsit37/papertrade/pkg/pt/api"
	"github.com/komsit37/papertrade/pkg/pt/config"
	"github.com/komsit37/papertrade/pkg/pt/enrich"
	"github.com/komsit37/papertrade/pkg/pt/route"
	"github.com/komsit37/papertrade/pkg/pt/session"
)

const (
	quoteCacheTTL  = 5 * time.Minute
	quoteCacheSize = 256
)

// app is the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfg     config.Config
	logger  *slog.Logger
	session *session.Session
	client  *api.Client
}

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: config.New(".env", ".env.local"), out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:          "pt",
		Short:        "Paper-trade stocks against a simulated trading API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.String("api-url", "", "trading API base URL (env PT_API_URL)")
	pf.Duration("timeout", 0, "HTTP timeout per request")
	pf.Duration("refresh-interval", 0, "dashboard polling interval for --watch")
	pf.Duration("notice-ttl", 0, "how long a trade notice stays visible")
	pf.String("session-file", "", "where the logged-in user is remembered")
	pf.Bool("color", true, "colorize output")
	pf.Int("max-col-width", 0, "maximum table column width (0 = from terminal)")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("ref-quotes", false, "compare prices with independent reference quotes")
	cobra.CheckErr(config.BindFlags(a.v, pf))

	rootCmd.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.marketCmd(),
		a.tradeCmd(),
		a.portfolioCmd(),
	)
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger(a.errOut)

	if !cfg.Color {
		text.DisableColors()
	}
	if a.cfg.MaxColWidth <= 0 {
		if w := detectTerminalWidth(); w > 0 {
			a.cfg.MaxColWidth = max(20, w/4)
		}
	}

	a.session = session.New(session.FileStore{Path: cfg.SessionFile})
	if err := a.session.Restore(); err != nil {
		a.logger.Warn("session restore failed", "path", cfg.SessionFile, "error", err)
	}

	client, err := api.NewClient(cfg.ClientConfig(a.logger))
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// gate resolves the view for r. A logged-out user is refused access to a
// gated view; a logged-in user asking for login or register is told so.
func (a *app) gate(r route.Route) (string, error) {
	to, redirected := route.Redirected(string(r), a.session.Active())
	if !redirected {
		return a.session.User(), nil
	}
	a.logger.Debug("route redirected", "from", r, "to", to)
	if r.Gated() {
		return "", fmt.Errorf("%w: run `pt login EMAIL --password PASSWORD`", session.ErrNotLoggedIn)
	}
	return a.session.User(), errAlreadyLoggedIn{user: a.session.User()}
}

type errAlreadyLoggedIn struct{ user string }

func (e errAlreadyLoggedIn) Error() string {
	return fmt.Sprintf("already logged in as %s; run `pt logout` first", e.user)
}

func (a *app) quotes() enrich.QuoteService {
	return enrich.NewCacheService(enrich.NewYFService(a.cfg.Timeout), quoteCacheTTL, quoteCacheSize)
}
