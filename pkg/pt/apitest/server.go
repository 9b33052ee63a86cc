// Package apitest runs an in-process fake of the trading REST API for tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/komsit37/papertrade/pkg/pt/types"
)

// Failure makes an endpoint answer with Status and an optional message body.
type Failure struct {
	Status  int
	Message string
}

// Server is a fake API. Fields may be changed between requests through the
// setter methods; reads and writes are guarded by mu.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	stocks   []types.Stock
	gainers  []types.Stock
	losers   []types.Stock
	active   []types.Stock
	holdings map[string][]types.Holding
	summary  map[string]types.ServerSummary
	failures map[string]Failure
	delays   map[string]time.Duration
	hits     map[string]int
	trades   []types.TradeRequest
}

// New starts a fake API; callers must Close it.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		holdings: map[string][]types.Holding{},
		summary:  map[string]types.ServerSummary{},
		failures: map[string]Failure{},
		delays:   map[string]time.Duration{},
		hits:     map[string]int{},
	}

	r := gin.New()
	api := r.Group("/api", s.intercept)
	{
		api.GET("/stocks", s.list(func() []types.Stock { return s.stocks }))
		api.GET("/stocks/top-gainers", s.list(func() []types.Stock { return s.gainers }))
		api.GET("/stocks/top-losers", s.list(func() []types.Stock { return s.losers }))
		api.GET("/stocks/most-active", s.list(func() []types.Stock { return s.active }))
		api.POST("/trades", s.createTrade)
		api.GET("/portfolio/user/:user", s.getHoldings)
		api.GET("/portfolio/user/:user/summary", s.getSummary)
	}
	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the API root to hand to api.ClientConfig.
func (s *Server) BaseURL() string { return s.URL + "/api" }

func (s *Server) SetStocks(all, gainers, losers, active []types.Stock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks, s.gainers, s.losers, s.active = all, gainers, losers, active
}

func (s *Server) SetHoldings(user string, h []types.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings[user] = h
}

func (s *Server) SetSummary(user string, sum types.ServerSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary[user] = sum
}

// Fail makes route (the gin route path, e.g. "/api/trades") fail.
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

// Delay holds responses on route for d or until the request is cancelled.
func (s *Server) Delay(route string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[route] = d
}

// Hits counts requests received on route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Trades returns the trade payloads received so far.
func (s *Server) Trades() []types.TradeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.TradeRequest(nil), s.trades...)
}

func (s *Server) intercept(c *gin.Context) {
	route := c.FullPath()
	s.mu.Lock()
	s.hits[route]++
	f, failing := s.failures[route]
	d := s.delays[route]
	s.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	if failing {
		if f.Message != "" {
			c.AbortWithStatusJSON(f.Status, gin.H{"message": f.Message})
		} else {
			c.AbortWithStatus(f.Status)
		}
		return
	}
	c.Next()
}

func (s *Server) list(get func() []types.Stock) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		out := get()
		s.mu.Unlock()
		if out == nil {
			out = []types.Stock{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) createTrade(c *gin.Context) {
	var req types.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}
	s.mu.Lock()
	s.trades = append(s.trades, req)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Trade executed successfully"})
}

func (s *Server) getHoldings(c *gin.Context) {
	s.mu.Lock()
	out := s.holdings[c.Param("user")]
	s.mu.Unlock()
	if out == nil {
		out = []types.Holding{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getSummary(c *gin.Context) {
	s.mu.Lock()
	out := s.summary[c.Param("user")]
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}
