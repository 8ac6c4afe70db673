package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	FeedsFile   string
	FeedTimeout time.Duration
	FeedRPS     int
	Workers     int
	CacheTTL    time.Duration
	IngestCron  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/newbuild?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		FeedsFile:   env("FEEDS_FILE", ""),
		FeedTimeout: time.Duration(atoi("FEED_TIMEOUT_SECONDS", 20)) * time.Second,
		FeedRPS:     atoi("FEED_RPS", 5),
		Workers:     atoi("FETCH_WORKERS", 4),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,
		IngestCron:  env("INGEST_CRON", ""),
	}
	if c.FeedsFile == "" {
		log.Debug().Msg("FEEDS_FILE not set; using built-in feed registry")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
