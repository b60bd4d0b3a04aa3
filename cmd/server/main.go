package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"securepay/internal/api"
	"securepay/internal/api/handlers"
	"securepay/internal/api/middleware"
	"securepay/internal/engine/notifications"
	"securepay/internal/pkg/logger"
	"securepay/internal/platform/auth"
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

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("jwt secret is empty, the read API will reject every request")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT)
	verifier := notifications.NewVerifier(cfg.Terminal.Key, cfg.Terminal.Password, nil)
	repo := notifications.NewRepository(db)

	limiter := middleware.NewRateLimiter()
	go limiter.RunCleanup(ctx)

	deps := &api.Dependencies{
		NotificationHandler: handlers.NewNotificationHandler(verifier, repo, logger.Component("notifications")),
		HealthHandler:       handlers.NewHealthHandler(db),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokenSvc),
		RateLimiter:         limiter,
		Limits:              cfg.RateLimit,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("addr", addr).Str("terminal", cfg.Terminal.Key).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}
