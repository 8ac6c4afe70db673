package domain

import (
	"context"
	"time"
)

// FeedClient retrieves one source's raw payload and decodes it into a
// list of loosely-typed records for the normalizer.
type FeedClient interface {
	Fetch(ctx context.Context, src FeedSource) ([]map[string]any, error)
}

// Cache is the shared TTL cache behind the catalog. Get reports whether
// the key was present; a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// PropertyRepository is the durable snapshot store written by the
// ingestor. The read path of the API never depends on it.
type PropertyRepository interface {
	UpsertProperties(ctx context.Context, ps []Property) error
	LogFeedMiss(ctx context.Context, feed string, status int, reason string) error
	ListProperties(ctx context.Context) ([]Property, error)
}
