package generation_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"wanderwise/internal/config"
	"wanderwise/internal/services"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/utils"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	ProvideComposer,
)

// ProvideTextGenerator creates the LLM client selected by GENERATION_PROVIDER.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (utils.TextGenerator, error) {
	gen := cfg.Generation
	switch gen.Provider {
	case config.ProviderOpenAI:
		log.Info("initializing text generator", logger.String("provider", gen.Provider), logger.String("model", gen.OpenAIModel))
		return utils.NewOpenAIGenerator(gen.OpenAIKey, gen.OpenAIBaseURL, gen.OpenAIModel, gen.MaxTokens, gen.Timeout), nil
	case config.ProviderGemini:
		log.Info("initializing text generator", logger.String("provider", gen.Provider), logger.String("model", gen.GeminiModel))
		client, err := utils.NewGeminiGenerator(context.Background(), gen.GeminiKey, gen.GeminiModel, gen.MaxTokens, gen.Timeout)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", gen.Provider)
	}
}

func ProvideComposer(cfg *config.Config) *services.Composer {
	return services.NewComposer(cfg.Generation.NormalTemperature, cfg.Generation.SurpriseTemperature)
}
