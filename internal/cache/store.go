// Package cache provides the in-memory read cache used in front of the
// settings repository.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store is a TTL'd string cache.
type Store interface {
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, bool)
	Delete(ctx context.Context, key string)
}

// Options configure the in-memory cache.
type Options struct {
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

// NewStore creates a go-cache backed Store.
func NewStore(opts Options) Store {
	defaultTTL := opts.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	cleanup := opts.CleanupInterval
	if cleanup <= 0 {
		cleanup = defaultTTL
	}
	return &goCacheStore{
		backend:    gocache.New(defaultTTL, cleanup),
		defaultTTL: defaultTTL,
	}
}

type goCacheStore struct {
	backend    *gocache.Cache
	defaultTTL time.Duration
}

func (s *goCacheStore) SetString(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.backend.Set(key, value, ttl)
	return nil
}

func (s *goCacheStore) GetString(_ context.Context, key string) (string, bool) {
	raw, ok := s.backend.Get(key)
	if !ok {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

func (s *goCacheStore) Delete(_ context.Context, key string) {
	s.backend.Delete(key)
}
