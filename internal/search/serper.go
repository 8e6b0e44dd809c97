package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	app_errors "news-agent/internal/errors"
)

const (
	// DefaultBaseURL is the Serper API root.
	DefaultBaseURL = "https://google.serper.dev"
	// DefaultTimeout bounds a single search call.
	DefaultTimeout = 30 * time.Second
	// MaxResults is the provider-side cap on num.
	MaxResults = 20
	// DefaultResults is used when a caller passes a non-positive count.
	DefaultResults = 10
)

// Searcher defines the search operations the rest of the application relies on.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) (*Response, error)
	SearchNews(ctx context.Context, query string, numResults int) (*Response, error)
}

// Options tunes a web search.
type Options struct {
	NumResults int
	// Location is a Serper "gl" country code such as "us" or "uk".
	Location string
}

// SerperClient calls the Serper Google Search API. Each call is a single
// attempt; failures are returned, never retried.
type SerperClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// ClientOption customizes a SerperClient.
type ClientOption func(*SerperClient)

// WithBaseURL points the client at a different API root.
func WithBaseURL(url string) ClientOption {
	return func(c *SerperClient) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *SerperClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithRateLimit paces outbound calls to perSecond requests per second.
// A non-positive value disables pacing.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *SerperClient) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewSerperClient constructs a Serper client for the given API key.
func NewSerperClient(apiKey string, opts ...ClientOption) *SerperClient {
	c := &SerperClient{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	Q    string `json:"q"`
	Num  int    `json:"num"`
	GL   string `json:"gl,omitempty"`
	Type string `json:"type,omitempty"`
}

// Search performs a Google web search.
func (c *SerperClient) Search(ctx context.Context, query string, opts Options) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", app_errors.ErrValidation)
	}
	req := searchRequest{Q: query, Num: clampResults(opts.NumResults), GL: opts.Location}
	resp, err := c.post(ctx, "/search", req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	return resp, nil
}

// SearchNews performs a Google News search.
func (c *SerperClient) SearchNews(ctx context.Context, query string, numResults int) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query cannot be empty", app_errors.ErrValidation)
	}
	req := searchRequest{Q: query, Num: clampResults(numResults), Type: "news"}
	resp, err := c.post(ctx, "/news", req)
	if err != nil {
		return nil, fmt.Errorf("news search request failed: %w", err)
	}
	return resp, nil
}

// Ping runs a one-result query to check that the key and endpoint work.
func (c *SerperClient) Ping(ctx context.Context) error {
	_, err := c.Search(ctx, "test query", Options{NumResults: 1})
	return err
}

func (c *SerperClient) post(ctx context.Context, path string, payload searchRequest) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response body: %v", app_errors.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: serper returned status %d: %s", app_errors.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var out Response
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", app_errors.ErrUpstream, err)
	}
	return &out, nil
}

func clampResults(n int) int {
	switch {
	case n <= 0:
		return DefaultResults
	case n > MaxResults:
		return MaxResults
	default:
		return n
	}
}
