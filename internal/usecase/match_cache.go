package usecase

import (
	"context"
	"time"
)

// MatchCache is the cache contract the matchmaking and pairing usecases
// need. A nil implementation (or one whose backend is down) degrades to
// no caching and no pairing locks, never to an error.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateMatchCache(ctx context.Context) error
}
