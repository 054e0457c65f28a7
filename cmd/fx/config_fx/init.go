package config_fx

import (
	"context"

	"go.uber.org/fx"

	"wanderwise/internal/config"
	"wanderwise/pkg/logger"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Pretty)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log, nil
}
