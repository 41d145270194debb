// Package httputil provides HTTP helpers shared by catalog clients.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures (transport errors and
// 5xx responses wrapped in [RetryableError]) with exponential backoff:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.Get(ctx, url, &v)
//	})
//
// Catalog lookups do not retry by default; the number of extra attempts is
// set with http.retries in the config file. Non-retryable errors (4xx,
// malformed JSON) are returned on the first attempt.
package httputil
