// Package uiuc fetches airfoil coordinates from the UIUC Airfoil Coordinates
// Database over HTTP. Responses are cached so repeated sweeps of the same
// section do not hit the network.
package uiuc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/foilsweep/pkg/buildinfo"
	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/datfile"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/observability"
)

// DefaultBaseURL is the public coordinate directory.
const DefaultBaseURL = "https://m-selig.ae.illinois.edu/ads/coord"

// Client is a geometry.Provider that downloads <base>/<name>.dat.
type Client struct {
	base    string
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	backoff cache.Backoff
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithBackoff overrides the retry policy.
func WithBackoff(b cache.Backoff) Option { return func(c *Client) { c.backoff = b } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// New creates a client for base (DefaultBaseURL when empty).
// A nil cache disables caching.
func New(base string, c cache.Cache, opts ...Option) (*Client, error) {
	if base == "" {
		base = DefaultBaseURL
	}
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	cl := &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		backoff: cache.DefaultBackoff,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, o := range opts {
		o(cl)
	}
	return cl, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string { return "uiuc" }

// Lookup implements geometry.Provider. A 404 declines; transport errors and
// 5xx responses are retried and then returned.
func (c *Client) Lookup(ctx context.Context, key string) ([]geometry.Point, bool, error) {
	name := strings.ToLower(strings.TrimSpace(key))
	if err := errors.ValidateAirfoilName(name); err != nil {
		return nil, false, nil
	}
	name = strings.TrimSuffix(name, ".dat")

	cacheKey := c.keyer.CoordinatesKey(c.Name(), name)
	if data, hit, err := c.cache.Get(ctx, cacheKey); err == nil && hit {
		if f, err := datfile.Read(strings.NewReader(string(data))); err == nil {
			observability.Cache().OnCacheHit(ctx, "coords")
			c.logger.Debug("coordinates cache hit", "name", name)
			return f.Points, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "coords")

	var body string
	err := c.backoff.Retry(ctx, func() error {
		var err error
		body, err = c.fetch(ctx, name)
		return err
	})
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	f, err := datfile.Read(strings.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	if err := c.cache.Set(ctx, cacheKey, []byte(body), cache.TTLCoordinates); err == nil {
		observability.Cache().OnCacheSet(ctx, "coords", len(body))
	}
	c.logger.Debug("fetched coordinates", "name", name, "points", len(f.Points))
	return f.Points, true, nil
}

func (c *Client) fetch(ctx context.Context, name string) (string, error) {
	url := fmt.Sprintf("%s/%s.dat", c.base, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return "", cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.New(errors.ErrCodeNotFound, "%s not in database", name)
	case resp.StatusCode >= 500:
		return "", cache.Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, resp.StatusCode))
	default:
		return "", errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	return string(data), nil
}
