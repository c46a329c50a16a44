package config

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/cache"
	"github.com/matzehuels/gridboard/pkg/service"
	"github.com/matzehuels/gridboard/pkg/session"
)

// OpenStore connects the configured session store.
func (c *Config) OpenStore(ctx context.Context) (session.Store, error) {
	switch c.Store {
	case StoreFile:
		return session.NewFileStore(c.SessionDir)
	case StoreRedis:
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	case StoreMemory, "":
		return session.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}

// OpenCache connects the configured placement cache, wrapped so that hits
// and misses reach the observability hooks.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		inner cache.Cache
		err   error
	)
	switch c.Cache {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheFile:
		dir := c.CacheDir
		if dir == "" {
			if dir, err = cache.DefaultDir(); err != nil {
				return nil, err
			}
		}
		inner, err = cache.NewFileCache(dir)
	case CacheRedis:
		inner, err = cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	case CacheMemory, "":
		inner = cache.NewMemoryCache(0)
	default:
		return nil, fmt.Errorf("unknown cache %q", c.Cache)
	}
	if err != nil {
		return nil, err
	}
	return cache.Instrumented(inner), nil
}

// Keyer returns the cache keyer, scoped by CachePrefix when one is set.
func (c *Config) Keyer() cache.Keyer {
	if c.CachePrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.CachePrefix)
}

// Service opens the store and cache and builds a service from them.
// The caller closes the service.
func (c *Config) Service(ctx context.Context, logger *log.Logger) (*service.Service, error) {
	store, err := c.OpenStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	cc, err := c.OpenCache(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}

	svc := service.New(store, cc, c.Keyer(), logger)
	svc.TTL = c.SessionTTL
	if c.BoardSize > 0 {
		svc.BoardSize = c.BoardSize
	}
	return svc, nil
}
