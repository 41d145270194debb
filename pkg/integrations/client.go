package integrations

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/coursefinder/pkg/cache"
	"github.com/matzehuels/coursefinder/pkg/errors"
	"github.com/matzehuels/coursefinder/pkg/httputil"
	"github.com/matzehuels/coursefinder/pkg/observability"
)

// Client provides shared HTTP functionality for catalog API clients.
// It handles response caching keyed by URL, optional retries, and common
// request headers.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http      *resty.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	retries   int
	refresh   bool
}

// Options configures a [Client]. The zero value is usable.
type Options struct {
	Timeout time.Duration     // Request timeout (default 30s)
	Retries int               // Extra attempts for transport errors and 5xx (default 0)
	Headers map[string]string // Headers applied to every request (may be nil)
	Keyer   cache.Keyer       // Cache key generator (default [cache.DefaultKeyer])
	Refresh bool              // Bypass cache reads; responses are still stored
}

// NewClient creates a Client with the given cache backend. Keys are scoped
// by namespace (e.g. "umdio:"). A nil backend disables caching.
func NewClient(backend cache.Cache, namespace string, opts Options) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	return &Client{
		http:      NewHTTPClient(opts.Timeout, opts.Headers),
		cache:     backend,
		keyer:     opts.Keyer,
		namespace: namespace,
		retries:   max(opts.Retries, 0),
		refresh:   opts.Refresh,
	}
}

// Fetch returns the response body for url, from cache when an entry younger
// than ttl exists, otherwise from the network. Successful bodies replace the
// cache entry.
//
// Returns:
//   - errors with code NETWORK_ERROR for transport failures
//   - errors with code HTTP_ERROR (or NOT_FOUND) for non-2xx statuses
func (c *Client) Fetch(ctx context.Context, url string, ttl time.Duration) ([]byte, error) {
	key := c.keyer.HTTPKey(c.namespace, url)
	if !c.refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, c.namespace)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, c.namespace)
	}

	var body []byte
	err := httputil.Retry(ctx, c.retries+1, time.Second, func() error {
		var err error
		body, err = c.doRequest(ctx, url)
		return err
	})
	if err != nil {
		var re *httputil.RetryableError
		if stderrors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}

	if err := c.cache.Set(ctx, key, body, ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, c.namespace, len(body))
	}
	return body, nil
}

// Get fetches url through the cache and JSON-decodes the body into v.
// A body that fails to decode is evicted and reported as PARSE_ERROR.
func (c *Client) Get(ctx context.Context, url string, ttl time.Duration, v any) error {
	body, err := c.Fetch(ctx, url, ttl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		_ = c.cache.Delete(ctx, c.keyer.HTTPKey(c.namespace, url))
		return errors.Wrap(errors.ErrCodeParse, err, "decode %s", url)
	}
	return nil
}

// Invalidate drops the cached response for url.
func (c *Client) Invalidate(ctx context.Context, url string) error {
	return c.cache.Delete(ctx, c.keyer.HTTPKey(c.namespace, url))
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	if err := checkStatus(resp.StatusCode(), url); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func checkStatus(code int, url string) error {
	detail := &errors.HTTPError{StatusCode: code, URL: url}
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.Wrap(errors.ErrCodeNotFound, detail, "GET %s", url)
	case code >= 500:
		return httputil.Retryable(errors.Wrap(errors.ErrCodeHTTP, detail, "GET %s", url))
	default:
		return errors.Wrap(errors.ErrCodeHTTP, detail, "GET %s", url)
	}
}
