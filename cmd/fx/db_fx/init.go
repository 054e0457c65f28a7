package db_fx

import (
	"context"

	"go.uber.org/fx"

	"wanderwise/internal/config"
	"wanderwise/internal/infra"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/logger"
)

var Module = fx.Provide(provideSavedSearchRepository)

// Without POSTGRES_URL saved searches live in memory and vanish on restart.
func provideSavedSearchRepository(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (repositories.SavedSearchRepositoryInterface, error) {
	if cfg.Postgres.DSN == "" {
		log.Warn("POSTGRES_URL not set, saved searches are kept in memory")
		return repositories.NewMemorySavedSearchRepository(), nil
	}

	db, err := infra.InitPostgresql(cfg.Postgres.DSN, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, log)
			return nil
		},
	})
	return repositories.NewSavedSearchRepository(db), nil
}
