package bootstrap

import (
	"context"
	"log/slog"

	"court-reservations/internal/infra/notify"
	"court-reservations/internal/pkg/config"
	"court-reservations/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier publishes to the broker when MQ_URL is set and only logs otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Notifier, error) {
	if !cfg.MQ.Enabled() {
		logger.Info("MQ_URL not set, notifications are logged only")
		return notify.NewLogNotifier(logger), nil
	}

	pub, err := notify.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return notify.NewAMQPNotifier(pub), nil
}
