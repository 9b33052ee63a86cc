package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at a temp dir and returns it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", c.APIURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, 10*time.Second, c.RefreshInterval)
	assert.Equal(t, 5*time.Second, c.NoticeTTL)
	assert.True(t, c.Color)
	assert.False(t, c.RefQuotes)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, filepath.Join(dir, "papertrade", "session.yaml"), c.SessionFile)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PT_API_URL", "http://trading.local:9000/api/")
	t.Setenv("PT_REFRESH_INTERVAL", "3s")
	t.Setenv("PT_REF_QUOTES", "true")
	t.Setenv("PT_COLOR", "false")

	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "http://trading.local:9000/api", c.APIURL)
	assert.Equal(t, 3*time.Second, c.RefreshInterval)
	assert.True(t, c.RefQuotes)
	assert.False(t, c.Color)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "papertrade"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "papertrade", "config.yaml"),
		[]byte("log_level: debug\nmax_col_width: 30\nsession_file: /tmp/pt-session.yaml\n"), 0o600))

	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 30, c.MaxColWidth)
	assert.Equal(t, "/tmp/pt-session.yaml", c.SessionFile)
}

func TestNew_DotEnv(t *testing.T) {
	isolate(t)
	// registered so the value godotenv sets is removed after the test
	t.Setenv("PT_TIMEOUT", "")
	require.NoError(t, os.Unsetenv("PT_TIMEOUT"))
	t.Setenv("PT_MAX_COL_WIDTH", "12")

	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("PT_TIMEOUT=2s\nPT_MAX_COL_WIDTH=99\n"), 0o600))

	c, err := Load(New(env, filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.Timeout)
	// the real environment wins over .env
	assert.Equal(t, 12, c.MaxColWidth)
}

func TestBindFlags(t *testing.T) {
	isolate(t)
	t.Setenv("PT_API_URL", "http://from-env/api")

	v := New()
	fs := pflag.NewFlagSet("pt", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.Duration("timeout", 0, "")
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--api-url", "http://from-flag/api"}))

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag/api", c.APIURL)
	// an unchanged flag does not shadow the default
	assert.Equal(t, 10*time.Second, c.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("PT_LOG_LEVEL", "loud")
	_, err := Load(New())
	assert.ErrorContains(t, err, "log_level")

	t.Setenv("PT_LOG_LEVEL", "info")
	t.Setenv("PT_TIMEOUT", "0s")
	_, err = Load(New())
	assert.ErrorContains(t, err, "timeout must be positive")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, l)
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{LogLevel: "info"}.Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "component", "market")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "component=market")
}

func TestConfig_ClientConfig(t *testing.T) {
	cc := Config{APIURL: "http://x/api", Timeout: 3 * time.Second}.ClientConfig(nil)
	assert.Equal(t, "http://x/api", cc.BaseURL)
	assert.Equal(t, 3*time.Second, cc.Timeout)
}
