package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/config"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/db"
	httpapi "github.com/scottyowen4683/aspiredentaldemo-sub003/internal/http"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/notify"
	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "receptionist-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	var mailer notify.Mailer
	if cfg.BrevoAPIKey == "" {
		mailer = &notify.MockMailer{}
		logger.Info().Msg("using mock mailer")
	} else {
		mailer = notify.BrevoMailer{
			APIKey:         cfg.BrevoAPIKey,
			SenderEmail:    cfg.SenderEmail,
			SenderName:     cfg.SenderName,
			RecipientEmail: cfg.RecipientEmail,
		}
	}

	var invoker provider.Invoker
	if cfg.MockProviders {
		invoker = &provider.MockInvoker{}
		logger.Info().Msg("using mock provider invoker")
	} else {
		invoker = provider.WebhookInvoker{Timeout: cfg.ProviderTimeout}
	}

	router := httpapi.Router(cfg, store, mailer, invoker, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
