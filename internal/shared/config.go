package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

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

	HostawayBase string
	HostawayKey  string

	GoogleBase     string
	GoogleKey      string
	GooglePlaceIDs []string

	Workers       int
	IngestTimeout time.Duration
	CacheTTL      time.Duration
	TrendsStart   time.Time
}

func Load() Config {
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
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),

		HostawayBase: env("HOSTAWAY_BASE_URL", "https://api.hostaway.com"),
		HostawayKey:  env("HOSTAWAY_API_KEY", ""),

		GoogleBase:     env("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		GoogleKey:      env("GOOGLE_PLACES_API_KEY", ""),
		GooglePlaceIDs: splitList(env("GOOGLE_PLACE_IDS", "")),

		Workers:       atoi("INGEST_WORKERS", 4),
		IngestTimeout: time.Duration(atoi("INGEST_TIMEOUT_SECONDS", 15)) * time.Second,
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		TrendsStart:   parseMonth(env("TRENDS_START", "2024-07")),
	}
	if c.HostawayKey == "" {
		log.Warn().Msg("HOSTAWAY_API_KEY is empty; serving bundled sample reviews")
	}
	if c.GoogleKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is empty; serving bundled sample reviews")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseMonth accepts YYYY-MM; a bad value falls back to 2024-07.
func parseMonth(s string) time.Time {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t
	}
	log.Warn().Str("value", s).Msg("invalid TRENDS_START, using default")
	return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
}
