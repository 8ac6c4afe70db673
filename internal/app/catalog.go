package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/observability"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

// catalogKey is the single cache slot holding the merged canonical list.
const catalogKey = "catalog:properties"

// CatalogService owns the merged property catalog: it fetches every
// enabled feed, normalizes the records, and keeps the result in a TTL
// cache. Concurrent callers that hit an expired cache share one fetch
// pass through the singleflight group.
type CatalogService struct {
	registry []domain.FeedSource
	client   domain.FeedClient
	cache    domain.Cache
	ttl      time.Duration
	workers  int64
	sf       singleflight.Group
}

func NewCatalogService(registry []domain.FeedSource, client domain.FeedClient, cache domain.Cache, ttl time.Duration, workers int) *CatalogService {
	if workers <= 0 {
		workers = 4
	}
	return &CatalogService{
		registry: registry,
		client:   client,
		cache:    cache,
		ttl:      ttl,
		workers:  int64(workers),
	}
}

// GetProperties returns the full merged catalog. It never returns an
// error: a pass where every source fails yields an empty list, which
// downstream renders as "no properties found". The empty result still
// replaces the cache so recovery is detected on the next expiry.
func (s *CatalogService) GetProperties(ctx context.Context) []domain.Property {
	var cached []domain.Property
	if ok, err := s.cache.Get(ctx, catalogKey, &cached); err == nil && ok {
		return cached
	} else if err != nil {
		log.Warn().Err(err).Msg("catalog cache read failed; refetching")
	}

	v, _, _ := s.sf.Do(catalogKey, func() (any, error) {
		return s.Refresh(ctx), nil
	})
	return v.([]domain.Property)
}

// Refresh runs a full fetch pass and overwrites the cache slot,
// bypassing any unexpired entry. The ingestor uses it to prime the
// cache after a scheduled run.
func (s *CatalogService) Refresh(ctx context.Context) []domain.Property {
	merged := s.fetchAll(ctx)
	if err := s.cache.Set(ctx, catalogKey, merged, s.ttl); err != nil {
		log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return merged
}

// Invalidate drops the cache slot so the next caller triggers a pass.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, catalogKey)
}

// fetchAll fetches every enabled source concurrently, each behind its
// own failure boundary: one slow or broken feed contributes an empty
// slice and never aborts the pass for the others. Merge order follows
// registry order regardless of completion order.
func (s *CatalogService) fetchAll(ctx context.Context) []domain.Property {
	enabled := make([]domain.FeedSource, 0, len(s.registry))
	for _, src := range s.registry {
		if src.Enabled && src.Endpoint != "" {
			enabled = append(enabled, src)
		}
	}

	results := make([][]domain.Property, len(enabled))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i, src := range enabled {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Str("feed", src.Name).Msg("fetch pass canceled")
			break
		}
		wg.Add(1)
		go func(i int, src domain.FeedSource) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = s.fetchOne(ctx, src)
		}(i, src)
	}
	wg.Wait()

	var merged []domain.Property
	for _, props := range results {
		merged = append(merged, props...)
	}
	if merged == nil {
		merged = []domain.Property{}
	}
	return merged
}

func (s *CatalogService) fetchOne(ctx context.Context, src domain.FeedSource) []domain.Property {
	start := time.Now()
	recs, err := s.client.Fetch(ctx, src)
	if err != nil {
		observability.ObserveFeed(src.Name, "error", time.Since(start))
		log.Warn().Err(err).Str("feed", src.Name).Msg("feed fetch failed; contributing zero records")
		return nil
	}
	props := normalizeAll(src.Name, recs)
	observability.ObserveFeed(src.Name, "ok", time.Since(start))
	log.Info().Str("feed", src.Name).Int("properties", len(props)).Msg("feed fetched")
	return props
}
