package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/feeds"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/observability"
	redisad "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/redis"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/app"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/shared"
	mysqlrepo "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	registry, err := shared.LoadFeeds(cfg.FeedsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load feed registry failed")
	}

	log.Info().
		Int("feeds", len(shared.EnabledFeeds(registry))).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client := feeds.New(cfg.FeedTimeout, cfg.FeedRPS)
	ing := app.NewIngestionService(registry, client, repo, cache, cfg.CacheTTL, cfg.Workers)

	if cfg.IngestCron == "" {
		if err := ing.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("ingestion failed")
		}
		log.Info().Msg("ingestion completed")
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.IngestCron, func() {
		if err := ing.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled ingestion failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.IngestCron).Msg("invalid cron spec")
	}
	log.Info().Str("spec", cfg.IngestCron).Msg("ingestor scheduled")
	c.Run()
}
