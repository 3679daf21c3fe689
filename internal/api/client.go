package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dcompoze/coinbase-advanced/internal/auth"
	"github.com/dcompoze/coinbase-advanced/internal/ratelimit"
)

// DefaultBaseURL is the production REST endpoint.
const DefaultBaseURL = "https://api.coinbase.com"

// pathPrefix is prepended to every endpoint path.
const pathPrefix = "/api/v3/brokerage"

// Client provides access to the Coinbase Advanced Trade REST API.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *ratelimit.Limiter

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client. creds may be nil, which restricts
// the client to public market data endpoints.
func NewClient(creds *auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
	}

	if creds != nil {
		c.limiter = ratelimit.NewPrivate()
	} else {
		c.limiter = ratelimit.NewPublic()
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithRateLimiter overrides the request limiter. A nil limiter disables
// client-side rate limiting.
func WithRateLimiter(l *ratelimit.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
