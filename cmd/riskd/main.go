package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/astromedai/mission-risk-service/internal/adapter/donki"
	httpadapter "github.com/astromedai/mission-risk-service/internal/adapter/http"
	kafkaadapter "github.com/astromedai/mission-risk-service/internal/adapter/kafka"
	"github.com/astromedai/mission-risk-service/internal/assessor"
	"github.com/astromedai/mission-risk-service/internal/config"
	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/astromedai/mission-risk-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize the DONKI feed (feature-flagged via DONKI_ENABLED).
	var source assessor.EventSource
	if cfg.DONKIEnabled {
		client := donki.NewClient(cfg.NASAAPIKey, cfg.DONKITimeout, logger)
		source = donki.NewCachedClient(client, cfg.DONKICacheSize)
		logger.Info("donki feed enabled", "cache_size", cfg.DONKICacheSize, "timeout", cfg.DONKITimeout)
	} else {
		logger.Info("donki feed disabled, only inline events accepted")
	}

	// Initialize the result publisher (feature-flagged via KAFKA_ENABLED).
	var publisher assessor.ResultPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaResultsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	engine := domain.NewEngine(cfg.Model)
	svc := assessor.New(source, publisher, engine, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
