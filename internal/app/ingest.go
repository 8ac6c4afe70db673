package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/domain"
)

// IngestionService runs scheduled catalog snapshots: fetch + normalize
// every enabled feed, persist the canonical records, record per-source
// misses, then prime the shared cache so API readers start warm.
type IngestionService struct {
	registry []domain.FeedSource
	client   domain.FeedClient
	repo     domain.PropertyRepository
	cache    domain.Cache
	ttl      time.Duration
	workers  int64
}

func NewIngestionService(registry []domain.FeedSource, client domain.FeedClient, repo domain.PropertyRepository, cache domain.Cache, ttl time.Duration, workers int) *IngestionService {
	if workers <= 0 {
		workers = 4
	}
	return &IngestionService{
		registry: registry,
		client:   client,
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		workers:  int64(workers),
	}
}

// Run executes one ingestion pass. Source failures are recorded as
// misses and skipped; only persistence failures surface, since losing
// the snapshot silently would defeat the point of the ingestor.
func (s *IngestionService) Run(ctx context.Context) error {
	type result struct {
		props []domain.Property
	}

	enabled := make([]domain.FeedSource, 0, len(s.registry))
	for _, src := range s.registry {
		if src.Enabled && src.Endpoint != "" {
			enabled = append(enabled, src)
		}
	}

	results := make([]result, len(enabled))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i, src := range enabled {
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(i int, src domain.FeedSource) {
			defer wg.Done()
			defer sem.Release(1)

			recs, err := s.client.Fetch(ctx, src)
			if err != nil {
				log.Warn().Err(err).Str("feed", src.Name).Msg("ingest: feed fetch failed")
				if s.repo != nil {
					if lerr := s.repo.LogFeedMiss(ctx, src.Name, 0, err.Error()); lerr != nil {
						log.Error().Err(lerr).Str("feed", src.Name).Msg("ingest: miss log failed")
					}
				}
				return
			}
			results[i] = result{props: normalizeAll(src.Name, recs)}
			log.Info().Str("feed", src.Name).Int("properties", len(results[i].props)).Msg("ingest: feed ok")
		}(i, src)
	}
	wg.Wait()

	var merged []domain.Property
	for _, r := range results {
		merged = append(merged, r.props...)
	}
	if merged == nil {
		merged = []domain.Property{}
	}

	if s.repo != nil && len(merged) > 0 {
		if err := s.repo.UpsertProperties(ctx, merged); err != nil {
			return fmt.Errorf("upsert catalog snapshot: %w", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogKey, merged, s.ttl); err != nil {
			log.Warn().Err(err).Msg("ingest: cache prime failed")
		}
	}

	log.Info().Int("properties", len(merged)).Int("feeds", len(enabled)).Msg("ingestion pass completed")
	return nil
}
