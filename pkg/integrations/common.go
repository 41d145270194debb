package integrations

import (
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/coursefinder/pkg/buildinfo"
	"github.com/matzehuels/coursefinder/pkg/observability"
)

// DefaultTimeout bounds a single catalog request.
const DefaultTimeout = 30 * time.Second

// UserAgent identifies coursefinder to the catalog API.
var UserAgent = "coursefinder/" + buildinfo.Version

// NewHTTPClient creates the resty client used for catalog requests. It sets
// the timeout, default headers and the observability HTTP hooks.
func NewHTTPClient(timeout time.Duration, headers map[string]string) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", UserAgent)
	client.SetHeader("Accept", "application/json")
	client.SetHeaders(headers)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		host, path := splitURL(req.URL)
		observability.HTTP().OnRequest(req.Context(), req.Method, host, path)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		host, path := splitURL(resp.Request.URL)
		observability.HTTP().OnResponse(resp.Request.Context(), resp.Request.Method, host, path, resp.StatusCode(), resp.Time())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		host, path := splitURL(req.URL)
		observability.HTTP().OnError(req.Context(), req.Method, host, path, err)
	})
	return client
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}

// URLEncode percent-encodes a string for use in URL query values.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
