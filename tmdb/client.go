package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/midwife-middleware/showbook/catalog"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// TMDB allows 40 requests per 10 seconds; ~4 req/s stays well under.
const defaultRequestDelay = 260 * time.Millisecond

const defaultMaxRetries = 3

const defaultRetryBackoff = 500 * time.Millisecond

// ProgressFunc receives live pagination progress for one discover
// query: the page just fetched, the total page count reported by the
// API (capped at maxPages), and the titles collected so far.
type ProgressFunc func(page, totalPages, titles int)

// Client wraps the TMDB discover API
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	logger       zerolog.Logger
	requestDelay time.Duration
	maxRetries   int
	retryBackoff time.Duration
	progress     ProgressFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the TMDB API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRequestDelay sets the politeness delay between page requests.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		c.requestDelay = d
	}
}

// WithMaxRetries bounds the retry budget for throttled or failing requests.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryBackoff sets the initial backoff before the first retry.
// It doubles on each subsequent attempt.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.retryBackoff = d
	}
}

// WithProgress registers a callback for per-page fetch progress.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// NewClient creates a new TMDB client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:      defaultBaseURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		requestDelay: defaultRequestDelay,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Discover fetches every title a provider offers for the given media
// kind and region, paging through the discover endpoint until the
// results are exhausted or maxPages is reached. Entries are normalized
// into catalog titles; duplicates are left to the aggregator.
func (c *Client) Discover(ctx context.Context, provider catalog.Provider, kind catalog.MediaKind, region string, maxPages int) ([]catalog.Title, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("%w: maxPages must be at least 1", ErrInvalidConfig)
	}

	var titles []catalog.Title
	page := 1

	for {
		payload, err := c.discoverPage(ctx, provider.ID, kind, region, page)
		if err != nil {
			return nil, fmt.Errorf("discover %s %s page %d: %w", provider.Name, kind, page, err)
		}

		for _, entry := range payload.Results {
			titles = append(titles, catalog.Title{
				Name:       entry.DisplayName(),
				Kind:       kind,
				ProviderID: provider.ID,
				Year:       entry.Year(),
			})
		}

		total := payload.TotalPages
		if total > maxPages {
			total = maxPages
		}
		if c.progress != nil {
			c.progress(page, total, len(titles))
		}

		c.logger.Debug().
			Str("provider", provider.Name).
			Str("kind", string(kind)).
			Int("page", page).
			Int("total_pages", total).
			Int("titles", len(titles)).
			Msg("Fetched discover page")

		if page >= payload.TotalPages || page >= maxPages {
			return titles, nil
		}
		page++

		if err := c.pause(ctx, c.requestDelay); err != nil {
			return nil, err
		}
	}
}

// discoverPage fetches a single page, retrying throttled and transient
// failures with doubling backoff up to the retry budget.
func (c *Client) discoverPage(ctx context.Context, providerID int, kind catalog.MediaKind, region string, page int) (*DiscoverResponse, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/discover/%s", c.baseURL, kind))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("with_watch_providers", strconv.Itoa(providerID))
	params.Set("watch_region", region)
	params.Set("with_watch_monetization_types", "flatrate")
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))
	endpoint.RawQuery = params.Encode()

	backoff := c.retryBackoff
	var lastStatus int

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff
			if lastStatus == 429 {
				c.logger.Warn().
					Int("attempt", attempt).
					Dur("backoff", wait).
					Msg("TMDB throttled request, backing off")
			}
			if err := c.pause(ctx, wait); err != nil {
				return nil, err
			}
			backoff *= 2
		}

		payload, status, retryAfter, err := c.doDiscover(ctx, endpoint.String())
		if err == nil {
			return payload, nil
		}
		if status == 401 || status == 403 {
			return nil, ErrUnauthorized
		}
		if status == 0 || retryable(status) {
			// Transport failure or transient status; try again if
			// budget allows, honoring Retry-After when present.
			lastStatus = status
			if retryAfter > backoff {
				backoff = retryAfter
			}
			if attempt == c.maxRetries {
				if status == 429 {
					return nil, ErrRateLimited
				}
				return nil, err
			}
			continue
		}
		return nil, err
	}

	// Unreachable; the loop always returns.
	return nil, ErrRateLimited
}

// doDiscover performs one request. It returns the HTTP status (0 on
// transport failure) and any Retry-After hint alongside the error.
func (c *Client) doDiscover(ctx context.Context, requestURL string) (*DiscoverResponse, int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		return nil, resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After")), apiErr
	}

	var payload DiscoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return &payload, resp.StatusCode, 0, nil
}

// pause sleeps for d unless the context is cancelled first.
func (c *Client) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
