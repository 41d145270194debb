// Package cache provides the response cache that sits between the catalog
// client and the network.
//
// # Backends
//
//   - [MemoryCache]: process-local map guarded by a mutex (the default)
//   - [FileCache]: JSON entries on disk, shared across CLI invocations
//   - [RedisCache]: shared cache for the web dashboard
//   - [NullCache]: caching disabled
//
// All backends store opaque bytes with a per-entry TTL. A TTL of zero means
// the entry never expires. There is no size bound and no eviction besides
// TTL expiry; catalog responses are small and processes are short-lived.
//
// # Keys
//
// Entries are keyed by the exact request URL, scoped by a namespace through
// a [Keyer]:
//
//	key := keyer.HTTPKey("umdio:", "https://api.umd.io/v1/courses/CMSC216")
//	// "http:umdio::https://api.umd.io/v1/courses/CMSC216"
package cache

import (
	"context"
	"time"
)

// Default TTLs for catalog responses.
const (
	// TTLResponse applies to course, section and professor responses.
	TTLResponse = time.Hour

	// TTLSemesters applies to the semester list, which changes a few times a year.
	TTLSemesters = 24 * time.Hour
)

// Cache stores opaque values with a time-to-live.
//
// Get returns (nil, false, nil) on a miss or an expired entry; errors are
// reserved for backend failures. Implementations must be safe for concurrent
// use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clock supplies the current time. Tests inject a fake clock to expire
// entries without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Keyer generates cache keys.
type Keyer interface {
	// HTTPKey returns the key for a response fetched from url under namespace.
	HTTPKey(namespace, url string) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (DefaultKeyer) HTTPKey(namespace, url string) string {
	return "http:" + namespace + ":" + url
}

// ScopedKeyer wraps a Keyer with a prefix, so several deployments can share
// one Redis instance without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, url string) string {
	return k.prefix + k.inner.HTTPKey(namespace, url)
}
