package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/KhaledQasim/group-order-app/internal/adapters/http"
	gateway "github.com/KhaledQasim/group-order-app/internal/adapters/signal"
	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/config"
	"github.com/KhaledQasim/group-order-app/internal/menu"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to parse flags")
	}
	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	catalog, err := menu.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load menu")
	}

	orch := app.NewOrchestrator(app.OwnershipPolicy{}, cfg.EventBuffer)
	orch.Nack = cfg.ExplicitNack
	go orch.Run(ctx)

	bells := gateway.NewRoomRateLimiter(cfg.BellLimit, cfg.BellInterval)
	go bells.RunPruner(ctx, cfg.BellInterval)

	r := router.SetupRouter(ctx, cfg, orch, catalog, bells)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Int("menu_items", len(catalog.Items())).Msg("group order server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
