package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"court-reservations/internal/handler/middleware"
	"court-reservations/internal/infra/notify"
	"court-reservations/internal/pkg/config"
)

// Consumes reservation and verification events and hands rendered emails to the mailer.
func main() {
	logCfg, err := config.LoadSection[config.LogConfig]()
	if err != nil {
		slog.Error("failed to load log config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(logCfg).GetSlogLogger()

	mqCfg, err := config.LoadSection[config.MQConfig]()
	if err != nil {
		logger.Error("failed to load mq config", "error", err)
		os.Exit(1)
	}
	if !mqCfg.Enabled() {
		logger.Error("MQ_URL is required for the notify worker")
		os.Exit(1)
	}

	if err := run(mqCfg, logger); err != nil {
		logger.Error("notify worker failed", "error", err)
		os.Exit(1)
	}
	logger.Info("notify worker stopped")
}

func run(mqCfg config.MQConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := notify.NewConsumer(notify.ConsumerConfig{
		URL:      mqCfg.URL,
		Exchange: mqCfg.Exchange,
		Queue:    mqCfg.Queue,
		Prefetch: mqCfg.Prefetch,
	}, notify.NewHandler(notify.NewLogMailer(logger)))

	if err := consumer.Connect(); err != nil {
		return err
	}
	defer consumer.Close()

	logger.Info("notify worker started", "exchange", mqCfg.Exchange, "queue", mqCfg.Queue)
	return consumer.Run(ctx)
}
