// Package api is the client for the trading REST API. The API itself is an
// external service; this package only speaks its contract:
//
//	GET  /stocks, /stocks/top-gainers, /stocks/top-losers, /stocks/most-active
//	POST /trades
//	GET  /portfolio/user/{userId}, /portfolio/user/{userId}/summary
//
// Failed calls are returned to the caller as-is. Nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API root, including the /api prefix.
	BaseURL string

	// Timeout bounds a single request when HTTPClient is not supplied.
	Timeout time.Duration

	Logger     *slog.Logger
	HTTPClient *http.Client
}

// ClientConfigDefaults returns a config pointing at a local backend.
func ClientConfigDefaults() ClientConfig {
	return ClientConfig{
		BaseURL: "http://localhost:8080/api",
		Timeout: 10 * time.Second,
		Logger:  slog.Default(),
	}
}

// Client talks to the trading API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config ClientConfig) (*Client, error) {
	defaults := ClientConfigDefaults()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	u, err := url.Parse(config.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", config.BaseURL)
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     config.Logger.With("component", "api-client"),
	}, nil
}

// APIError is a non-2xx response. Message is the server's human-readable
// message when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (HTTP %d)", e.Status)
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) Stocks(ctx context.Context) ([]types.Stock, error) {
	return c.stockList(ctx, "/stocks")
}

func (c *Client) TopGainers(ctx context.Context) ([]types.Stock, error) {
	return c.stockList(ctx, "/stocks/top-gainers")
}

func (c *Client) TopLosers(ctx context.Context) ([]types.Stock, error) {
	return c.stockList(ctx, "/stocks/top-losers")
}

func (c *Client) MostActive(ctx context.Context) ([]types.Stock, error) {
	return c.stockList(ctx, "/stocks/most-active")
}

func (c *Client) stockList(ctx context.Context, path string) ([]types.Stock, error) {
	var out []types.Stock
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTrade submits a trade. The response body is not interpreted beyond
// its status and optional message.
func (c *Client) CreateTrade(ctx context.Context, req types.TradeRequest) error {
	return c.do(ctx, http.MethodPost, "/trades", req, nil)
}

// Holdings lists the holdings of user.
func (c *Client) Holdings(ctx context.Context, user string) ([]types.Holding, error) {
	var out []types.Holding
	if err := c.do(ctx, http.MethodGet, "/portfolio/user/"+url.PathEscape(user), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioSummary fetches the server-computed aggregate for user.
func (c *Client) PortfolioSummary(ctx context.Context, user string) (types.ServerSummary, error) {
	var out types.ServerSummary
	err := c.do(ctx, http.MethodGet, "/portfolio/user/"+url.PathEscape(user)+"/summary", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if jsonErr := json.Unmarshal(data, &eb); jsonErr == nil {
			apiErr.Message = eb.Message
		}
		c.logger.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response of %s: %w", path, err)
	}
	return nil
}
