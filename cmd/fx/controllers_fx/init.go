package controllers_fx

import (
	"go.uber.org/fx"

	"wanderwise/internal/api/controllers"
	"wanderwise/internal/catalog"
)

var Module = fx.Options(
	fx.Provide(catalog.Load),
	fx.Provide(controllers.NewRecommendationController),
	fx.Provide(controllers.NewSavedSearchController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewImageController))
