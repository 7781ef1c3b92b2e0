package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/black-and-white/internal/config"
	"github.com/aaronzipp/black-and-white/internal/handlers"
	"github.com/aaronzipp/black-and-white/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (default $BW_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.ConfigureRuntime("")
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logging.ConfigureRuntime(cfg.LogLevel)

	ctx := handlers.NewContext(cfg)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           ctx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Msgf("Server starting on http://localhost%s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Shutdown incomplete")
	}
}
