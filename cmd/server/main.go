package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lmorazan/corresponsal-backend/internal/auth"
	"github.com/lmorazan/corresponsal-backend/internal/banking"
	"github.com/lmorazan/corresponsal-backend/internal/config"
	"github.com/lmorazan/corresponsal-backend/internal/musoni"
	"github.com/lmorazan/corresponsal-backend/internal/server"
)

func main() {
	loadLocalEnv()
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gateway := buildGateway(cfg)
	svc := banking.NewService(gateway, banking.Config{
		PaymentTypeID:      cfg.PaymentTypeID,
		EnrichClients:      cfg.SearchEnrichClients,
		ReversalAmountMode: cfg.ReversalAmountMode,
	})
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	srv := server.New(cfg, svc, tokens)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Bool("mockMode", cfg.UseMockAPI).
			Msg("corresponsal backend listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

// buildGateway selects the upstream backend once at startup; service
// code never branches on mock mode per call.
func buildGateway(cfg config.Config) musoni.UpstreamGateway {
	if cfg.UseMockAPI {
		return musoni.NewFixtureGateway()
	}
	return musoni.NewHTTPGateway(musoni.GatewayConfig{
		BaseURL:     cfg.MusoniBaseURL,
		Username:    cfg.MusoniUser,
		Password:    cfg.MusoniPassword,
		TenantID:    cfg.MusoniTenantID,
		APIKey:      cfg.MusoniAPIKey,
		SearchParam: cfg.MusoniSearchParam,
	})
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}
