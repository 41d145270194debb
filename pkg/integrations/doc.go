// Package integrations provides HTTP clients for course-catalog APIs.
//
// # Overview
//
// The [Client] type holds the transport shared by catalog clients:
//
//   - GET requests through resty with a timeout and default headers
//   - Response caching keyed by the exact request URL ([cache.Cache])
//   - Optional retry with backoff for transport errors and 5xx responses
//   - Observability hooks for every request
//
// Each catalog lives in its own subpackage; [umdio] wraps the University of
// Maryland course API:
//
//	client := umdio.NewClient(cache.NewMemoryCache(nil), umdio.Options{})
//	courses, err := client.Courses(ctx, []string{"CMSC216"}, "")
//
// # Errors
//
// Failures are reported with codes from [errors]: NETWORK_ERROR when the
// request never got a response, HTTP_ERROR (NOT_FOUND for 404) for non-2xx
// statuses, and PARSE_ERROR when a body does not match the expected schema.
//
// [umdio]: github.com/matzehuels/coursefinder/pkg/integrations/umdio
// [cache.Cache]: github.com/matzehuels/coursefinder/pkg/cache.Cache
// [errors]: github.com/matzehuels/coursefinder/pkg/errors
package integrations
