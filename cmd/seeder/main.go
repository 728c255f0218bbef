package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/utkarshagawade17/flex-reviews/internal/adapters/observability"
	"github.com/utkarshagawade17/flex-reviews/internal/shared"
)

// Applies the .sql files from MIGRATIONS_DIR (default ./migrations) in
// lexical order. Statements are idempotent, so re-running is safe.
func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.MySQLDSN == "" {
		log.Fatal().Msg("MYSQL_DSN is required")
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("read migrations dir failed")
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		log.Fatal().Str("dir", dir).Msg("no .sql files found")
	}
	sort.Strings(files)

	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			log.Fatal().Err(err).Str("file", f).Msg("read migration failed")
		}
		if _, err := db.Exec(string(b)); err != nil {
			log.Fatal().Err(err).Str("file", f).Msg("exec migration failed")
		}
		log.Info().Str("file", f).Msg("migration applied")
	}
	log.Info().Int("count", len(files)).Msg("migrations complete")
}
