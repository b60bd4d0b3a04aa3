package main

import (
	"flag"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"securepay/internal/pkg/logger"
	"securepay/internal/platform/config"
	"securepay/internal/platform/database"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (environment only when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Str("database", cfg.Database.URL).Msg("migrations applied")
}
