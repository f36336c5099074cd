package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/chapool/go-disperse/internal/api"
	"github/chapool/go-disperse/internal/api/router"
	"github/chapool/go-disperse/internal/config"
)

const shutdownTimeout = 30 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the HTTP server",
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.ApplyLogger()

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("listen_address", cfg.Echo.ListenAddress).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, err := range s.Shutdown(ctx) {
		log.Error().Err(err).Msg("Failed to shutdown server component")
	}
}
