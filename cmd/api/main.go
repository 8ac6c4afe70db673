package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/feeds"
	server "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/http_server"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/observability"
	redisad "github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/adapters/redis"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/app"
	"github.com/oskar-del/newbuild-homes-costa-blanca-sub013/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	registry, err := shared.LoadFeeds(cfg.FeedsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load feed registry failed")
	}
	log.Info().Int("feeds", len(registry)).Int("enabled", len(shared.EnabledFeeds(registry))).Msg("feed registry loaded")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client := feeds.New(cfg.FeedTimeout, cfg.FeedRPS)
	catalog := app.NewCatalogService(registry, client, cache, cfg.CacheTTL, cfg.Workers)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Catalog: catalog})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
