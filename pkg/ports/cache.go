package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by ResultCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ResultCache stores encoded simulation results.
type ResultCache interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
