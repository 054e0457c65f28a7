package recommendation_fx

import (
	"go.uber.org/fx"

	"wanderwise/internal/services"
)

var Module = fx.Provide(services.NewRecommendationService)
