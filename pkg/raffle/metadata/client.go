package metadata

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	xrate "golang.org/x/time/rate"

	"github.com/code-payments/mad-raffle/pkg/cache"
	"github.com/code-payments/mad-raffle/pkg/metrics"
	"github.com/code-payments/mad-raffle/pkg/rate"
)

const (
	metricsStructName = "raffle.metadata.client"

	defaultCacheBudget  = 1024
	defaultRequestLimit = 10 // per host, per second

	maxResponseSize = 1 << 20
)

var (
	ErrInvalidUri = errors.New("invalid metadata uri")
)

// OffChainMetadata is the JSON document an NFT's metadata uri points at.
// Only the fields the raffle displays are decoded.
type OffChainMetadata struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Uri   string `json:"uri,omitempty"`
}

// Fetcher loads off-chain NFT metadata.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (*OffChainMetadata, error)
}

type Option func(*Client)

// WithHttpClient overrides the default http.Client
func WithHttpClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCacheBudget sets how many documents are kept in memory. Zero disables
// caching.
func WithCacheBudget(budget int) Option {
	return func(c *Client) {
		c.cacheBudget = budget
	}
}

// WithRateLimiter overrides the per-host request limiter
func WithRateLimiter(limiter rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// Client fetches metadata over HTTP. Successful responses are cached by uri,
// and failed requests are never retried.
type Client struct {
	httpClient  *http.Client
	limiter     rate.Limiter
	cacheBudget int
	cache       cache.Cache[OffChainMetadata]
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		limiter:     rate.NewLocalRateLimiter(xrate.Limit(defaultRequestLimit)),
		cacheBudget: defaultCacheBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheBudget > 0 {
		c.cache = cache.NewCache[OffChainMetadata](c.cacheBudget)
	}
	return c
}

// Fetch implements Fetcher.Fetch
func (c *Client) Fetch(ctx context.Context, uri string) (*OffChainMetadata, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Fetch")
	defer tracer.End()

	parsed, err := url.Parse(uri)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidUri
	}

	if c.cache != nil {
		if cached, ok := c.cache.Retrieve(uri); ok {
			return &cached, nil
		}
	}

	if err := c.limiter.Wait(ctx, parsed.Host); err != nil {
		return nil, errors.Wrap(err, "error waiting for rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating http request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error executing http request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("received http status %d", resp.StatusCode)
		tracer.OnError(err)
		return nil, err
	}

	var document OffChainMetadata
	if err := json.Unmarshal(respBody, &document); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling json response")
	}

	if c.cache != nil {
		c.cache.Upsert(uri, document, 1)
	}
	return &document, nil
}
