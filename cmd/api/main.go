package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/googleplaces"
	"github.com/utkarshagawade17/flex-reviews/internal/adapters/hostaway"
	server "github.com/utkarshagawade17/flex-reviews/internal/adapters/http_server"
	"github.com/utkarshagawade17/flex-reviews/internal/adapters/observability"
	redisad "github.com/utkarshagawade17/flex-reviews/internal/adapters/redis"
	"github.com/utkarshagawade17/flex-reviews/internal/app"
	"github.com/utkarshagawade17/flex-reviews/internal/domain"
	"github.com/utkarshagawade17/flex-reviews/internal/shared"
	"github.com/utkarshagawade17/flex-reviews/internal/storage/memory"
	mysqlrepo "github.com/utkarshagawade17/flex-reviews/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// moderation-state db; optional, the dashboard runs stateless without it
	var repo *mysqlrepo.Repo
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		repo = mysqlrepo.New(db)
	} else {
		log.Warn().Msg("MYSQL_DSN is empty; moderation state will not survive restarts")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	store := memory.New()

	sources := []domain.ReviewSource{
		hostaway.New(cfg.HostawayBase, cfg.HostawayKey, 5),
		googleplaces.New(cfg.GoogleBase, cfg.GoogleKey, cfg.GooglePlaceIDs, 5),
	}

	// nil interface values, not typed nils, when the db is absent
	var states domain.StateRepository
	var tagRepo domain.TagRepository
	if repo != nil {
		states = repo
		tagRepo = repo
	}

	tags := app.NewTagRegistry(tagRepo)
	if err := tags.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("loading custom tags failed")
	}

	ing := app.NewIngestionService(sources, store, states, cache, cfg.Workers, cfg.IngestTimeout)
	report := ing.IngestAll(ctx)
	for _, sr := range report.Sources {
		if sr.Error != "" {
			log.Warn().Str("source", string(sr.Source)).Str("error", sr.Error).Msg("startup ingest degraded")
			continue
		}
		log.Info().Str("source", string(sr.Source)).Int("fetched", sr.Fetched).Int("excluded", sr.Excluded).Msg("startup ingest ok")
	}

	q := app.NewQueryService(store, cache, cfg.CacheTTL)
	trends := app.NewTrendsService(store, cache, cfg.CacheTTL, cfg.TrendsStart)
	mod := app.NewModerationService(store, states, tags, cache)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, Trends: trends, Mod: mod, Tags: tags, Ingest: ing})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
