package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/dexter-cli/internal/core/domain"
	"github.com/custodia-labs/dexter-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 15 * time.Second

	// maxBodyBytes caps how much of a response body is decoded.
	maxBodyBytes = 8 << 20

	userAgent = "dexter-cli (+https://github.com/custodia-labs/dexter-cli)"
)

// Ensure Client implements the interface.
var _ driven.CatalogClient = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root. Defaults to domain.DefaultBaseURL.
	BaseURL string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the rate limiter.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the transport. Its Timeout is left untouched.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from application settings.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
		Burst:             s.Burst,
	}
}

// Client is an HTTP client for the PokeAPI catalog.
type Client struct {
	http        *http.Client
	baseURL     string
	timeout     time.Duration
	rateLimiter *RateLimiter
}

// NewClient creates a new PokeAPI client.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = domain.DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		http:        hc,
		baseURL:     base,
		timeout:     timeout,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
}

// ListPage fetches one page of the catalog listing.
func (c *Client) ListPage(ctx context.Context, offset, limit int) (domain.Page, error) {
	if offset < 0 || limit <= 0 {
		return domain.Page{}, fmt.Errorf("%w: offset %d, limit %d", domain.ErrInvalidInput, offset, limit)
	}

	var resp listResponse
	if err := c.getJSON(ctx, c.listURL(offset, limit), &resp); err != nil {
		return domain.Page{}, err
	}

	return domain.Page{
		Items:   toSummaries(resp.Results),
		HasMore: resp.Next != nil && *resp.Next != "",
		Total:   resp.Count,
	}, nil
}

// FetchFullIndex fetches the first limit names of the catalog in one request.
func (c *Client) FetchFullIndex(ctx context.Context, limit int) ([]domain.CatalogSummary, error) {
	if limit <= 0 {
		limit = domain.DefaultIndexLimit
	}

	var resp listResponse
	if err := c.getJSON(ctx, c.listURL(0, limit), &resp); err != nil {
		return nil, err
	}
	return toSummaries(resp.Results), nil
}

// FetchDetail hydrates one entry: its detail resource plus its species colour.
func (c *Client) FetchDetail(ctx context.Context, locator string) (domain.CatalogItem, error) {
	if strings.TrimSpace(locator) == "" {
		return domain.CatalogItem{}, ErrEmptyLocator
	}

	var p pokemonResponse
	if err := c.getJSON(ctx, locator, &p); err != nil {
		return domain.CatalogItem{}, err
	}
	if p.ID <= 0 || p.Name == "" || len(p.Types) == 0 {
		return domain.CatalogItem{}, &TransportError{Op: "decode", URL: locator, Err: ErrMalformedEntry}
	}

	speciesURL := p.Species.URL
	if speciesURL == "" {
		speciesURL = fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, p.ID)
	}

	var s speciesResponse
	if err := c.getJSON(ctx, speciesURL, &s); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("species for %s: %w", p.Name, err)
	}

	return p.toDomain(s.Color.Name), nil
}

// Locator builds the detail URL for a name or numeric identifier.
func (c *Client) Locator(ref string) string {
	ref = strings.ToLower(strings.TrimSpace(ref))
	return fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(ref))
}

func (c *Client) listURL(offset, limit int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return c.baseURL + "/pokemon?" + q.Encode()
}

// getJSON performs one throttled, time-bounded GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return &TransportError{Op: "rate limit wait", URL: rawURL, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	defer logger.Timed("GET %s", rawURL)()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &TransportError{Op: "build request", URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "GET", URL: rawURL, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("closing response body for %s: %v", rawURL, closeErr)
		}
	}()

	if retryAt, limited := c.rateLimiter.Observe(resp); limited {
		logger.Warn("Rate limited by %s, requests resume at %s", rawURL, retryAt.Format(time.TimeOnly))
		return &RateLimitError{RetryAt: retryAt, URL: rawURL}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &APIError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &TransportError{Op: "decode", URL: rawURL, Err: err}
	}
	return nil
}
