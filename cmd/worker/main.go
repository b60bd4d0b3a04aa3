package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"securepay/internal/engine/acquiring"
	"securepay/internal/engine/notifications"
	"securepay/internal/pkg/logger"
	"securepay/internal/platform/config"
	"securepay/internal/platform/database"
	"securepay/internal/workers"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (environment only when empty)")
	once := flag.Bool("once", false, "Run a single sync pass and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	client := acquiring.NewFromConfig(cfg.Terminal, cfg.API, acquiring.WithLogger(logger.Component("acquiring")))
	syncer := workers.NewStatusSync(client, notifications.NewRepository(db), logger.Component("status_sync"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		result, err := syncer.Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("state sync failed")
		}
		log.Info().
			Int("checked", result.Checked).
			Int("updated", result.Updated).
			Int("failed", result.Failed).
			Msg("state sync done")
		return
	}

	log.Info().Dur("interval", cfg.Worker.SyncInterval).Msg("starting state sync worker")
	syncer.RunEvery(ctx, cfg.Worker.SyncInterval)
	log.Info().Msg("worker stopped")
}
