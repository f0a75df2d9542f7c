// Package price fetches the USD spot price of bitcoin from CoinGecko with a
// short-lived cache, so every fiat conversion in the app rides one upstream
// request per cache window. The fetch never fails the caller: on any error
// the last known price (or a fixed fallback) is served instead.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the CoinGecko API root.
	DefaultBaseURL = "https://api.coingecko.com"
	// FallbackUSD is served when no price has ever been fetched.
	FallbackUSD = 100000.0

	cacheTTL     = 5 * time.Minute
	fetchTimeout = 10 * time.Second
	// retryWait spaces out upstream attempts while the API is failing, so
	// an outage doesn't turn every request into an outbound call.
	retryWait = 30 * time.Second
)

// Quote is a priced moment.
type Quote struct {
	USD           float64   `json:"usd"`
	Change24h     float64   `json:"change_24h"`
	SatsPerDollar float64   `json:"sats_per_dollar"`
	FetchedAt     time.Time `json:"fetched_at"`
	Stale         bool      `json:"stale"`
}

// Client caches spot prices. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	lastQuote Quote
	hasQuote  bool
	retryAt   time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock substitutes the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a price client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: fetchTimeout},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Spot returns the cached quote, refreshing it when the cache window has
// passed. A failed refresh marks the quote stale but still returns a usable
// price, and holds off further upstream attempts for a short retry window.
func (c *Client) Spot(ctx context.Context) Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.hasQuote && now.Sub(c.lastQuote.FetchedAt) < cacheTTL {
		return c.lastQuote
	}
	if now.Before(c.retryAt) {
		return c.staleQuote(now)
	}

	usd, change, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("price fetch failed, serving last known", "error", err)
		c.retryAt = now.Add(retryWait)
		return c.staleQuote(now)
	}
	c.retryAt = time.Time{}

	c.lastQuote = Quote{
		USD:           usd,
		Change24h:     change,
		SatsPerDollar: 1e8 / usd,
		FetchedAt:     c.now(),
	}
	c.hasQuote = true
	return c.lastQuote
}

// staleQuote serves the last known price, or the fixed fallback when no
// fetch has ever succeeded. Caller holds the mutex.
func (c *Client) staleQuote(now time.Time) Quote {
	if c.hasQuote {
		stale := c.lastQuote
		stale.Stale = true
		return stale
	}
	return Quote{
		USD:           FallbackUSD,
		SatsPerDollar: 1e8 / FallbackUSD,
		FetchedAt:     now,
		Stale:         true,
	}
}

// USDPerBTC returns just the spot price, for callers that only stamp fiat
// values.
func (c *Client) USDPerBTC(ctx context.Context) float64 {
	return c.Spot(ctx).USD
}

func (c *Client) fetch(ctx context.Context) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := c.baseURL + "/api/v3/simple/price?ids=bitcoin&vs_currencies=usd&include_24hr_change=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Bitcoin struct {
			USD       float64 `json:"usd"`
			Change24h float64 `json:"usd_24h_change"`
		} `json:"bitcoin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}
	if body.Bitcoin.USD <= 0 {
		return 0, 0, fmt.Errorf("non-positive price %v", body.Bitcoin.USD)
	}
	return body.Bitcoin.USD, body.Bitcoin.Change24h, nil
}
