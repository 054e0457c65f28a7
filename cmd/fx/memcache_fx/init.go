package memcache_fx

import (
	"context"

	"go.uber.org/fx"

	"wanderwise/internal/config"
	"wanderwise/internal/infra"
	"wanderwise/pkg/logger"
	mem "wanderwise/pkg/memcache"
)

var Module = fx.Provide(provideRequestTokenStore)

func provideRequestTokenStore(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (mem.RequestTokenStore, error) {
	if cfg.RequestTokens.Backend != config.TokenBackendRedis {
		return mem.NewRequestTokens(cfg.RequestTokens.TTL), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	log.Info("request tokens stored in redis", logger.String("addr", cfg.Redis.Addr))
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return mem.NewRedisRequestTokens(client, cfg.RequestTokens.TTL), nil
}
