package config

import (
	"context"

	"github.com/matzehuels/coursefinder/pkg/cache"
)

// OpenCache opens the configured cache backend. noCache forces caching off.
// The caller must Close the returned cache.
func (c Config) OpenCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if noCache {
		return cache.NewNullCache(), keyer, nil
	}

	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), keyer, nil
	case BackendFile:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, nil, err
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		if c.Cache.Redis.Prefix != "" {
			keyer = cache.NewScopedKeyer(keyer, c.Cache.Redis.Prefix)
		}
		return rc, keyer, nil
	default:
		return cache.NewMemoryCache(nil), keyer, nil
	}
}
