package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kakeibo/internal/advice"
	"kakeibo/internal/backend"
	"kakeibo/internal/config"
	apphttp "kakeibo/internal/http"
	"kakeibo/internal/log"
	"kakeibo/internal/session"
	"kakeibo/internal/widgets"
)

func main() {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	providers := backend.Build(ctx, cfg, logger)
	if providers.Cleanup != nil {
		defer func() {
			if err := providers.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", log.FieldError, err)
			}
		}()
	}

	manager := session.NewManager(providers.Local, providers.Remote,
		providers.LocalAuth, providers.RemoteAuth, logger)
	advisor := advice.New(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	ws := widgets.NewService(cfg.WeatherLatitude, cfg.WeatherLongitude,
		cfg.RatesBaseCurrency, cfg.WidgetTimeout, logger)

	srv := apphttp.NewServer(":"+cfg.Port, manager, advisor, ws)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting kakeibo server",
		"port", cfg.Port,
		"remote", cfg.RemoteStoreConfigured(),
		"advice", cfg.AdviceConfigured())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
