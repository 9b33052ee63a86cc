// Package config resolves settings from defaults, an optional config.yaml,
// a .env file, PT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/komsit37/papertrade/pkg/pt/api"
	"github.com/komsit37/papertrade/pkg/pt/market"
	"github.com/komsit37/papertrade/pkg/pt/session"
	"github.com/komsit37/papertrade/pkg/pt/trade"
)

const (
	KeyAPIURL          = "api_url"
	KeyTimeout         = "timeout"
	KeyRefreshInterval = "refresh_interval"
	KeyNoticeTTL       = "notice_ttl"
	KeySessionFile     = "session_file"
	KeyColor           = "color"
	KeyMaxColWidth     = "max_col_width"
	KeyLogLevel        = "log_level"
	KeyRefQuotes       = "ref_quotes"
)

const EnvPrefix = "PT"

// Config is the resolved settings for one run.
type Config struct {
	APIURL          string
	Timeout         time.Duration
	RefreshInterval time.Duration
	NoticeTTL       time.Duration
	SessionFile     string
	Color           bool
	MaxColWidth     int
	LogLevel        string
	RefQuotes       bool
}

// New returns a viper instance with defaults, env binding and the optional
// config file search path set. envFiles are loaded into the process
// environment first; missing files are ignored.
func New(envFiles ...string) *viper.Viper {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	defaults := api.ClientConfigDefaults()
	v.SetDefault(KeyAPIURL, defaults.BaseURL)
	v.SetDefault(KeyTimeout, defaults.Timeout)
	v.SetDefault(KeyRefreshInterval, market.DefaultRefreshInterval)
	v.SetDefault(KeyNoticeTTL, trade.DefaultNoticeTTL)
	v.SetDefault(KeySessionFile, "")
	v.SetDefault(KeyColor, true)
	v.SetDefault(KeyMaxColWidth, 0)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyRefQuotes, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "papertrade"))
	}
	v.AddConfigPath(".")
	return v
}

// BindFlags binds each flag to the key of the same name with dashes turned
// into underscores, so --api-url sets api_url.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// Load reads the config file if one exists and resolves all keys.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	c := Config{
		APIURL:          strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		Timeout:         v.GetDuration(KeyTimeout),
		RefreshInterval: v.GetDuration(KeyRefreshInterval),
		NoticeTTL:       v.GetDuration(KeyNoticeTTL),
		SessionFile:     v.GetString(KeySessionFile),
		Color:           v.GetBool(KeyColor),
		MaxColWidth:     v.GetInt(KeyMaxColWidth),
		LogLevel:        v.GetString(KeyLogLevel),
		RefQuotes:       v.GetBool(KeyRefQuotes),
	}
	if c.APIURL == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyAPIURL)
	}
	if c.Timeout <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Timeout)
	}
	if c.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeyRefreshInterval, c.RefreshInterval)
	}
	if c.NoticeTTL <= 0 {
		c.NoticeTTL = trade.DefaultNoticeTTL
	}
	if c.SessionFile == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return Config{}, err
		}
		c.SessionFile = p
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseLevel accepts debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return l, nil
}

// Logger builds the text logger for the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ClientConfig is the API client configuration for these settings.
func (c Config) ClientConfig(logger *slog.Logger) api.ClientConfig {
	cc := api.ClientConfigDefaults()
	cc.BaseURL = c.APIURL
	cc.Timeout = c.Timeout
	cc.Logger = logger
	return cc
}
