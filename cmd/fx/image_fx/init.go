package image_fx

import (
	"go.uber.org/fx"

	"wanderwise/internal/config"
	"wanderwise/internal/services"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/utils"
)

// PlacesPhotoRoute is where Places photo references are proxied.
const PlacesPhotoRoute = "/api/images/places/"

var Module = fx.Provide(
	ProvideImageProviders,
	ProvideNormalizer,
)

// ProvideImageProviders returns a nil PhotoFetcher unless Google Places is the provider.
func ProvideImageProviders(cfg *config.Config, log logger.Logger) (utils.ImageSearcher, utils.PhotoFetcher, error) {
	switch cfg.Images.Provider {
	case config.ImageProviderUnsplash:
		log.Info("image lookups via unsplash")
		return utils.NewUnsplashSearcher(cfg.Images.UnsplashURL, cfg.Images.UnsplashKey, cfg.Images.Timeout), nil, nil
	case config.ImageProviderPlaces:
		client, err := utils.NewPlacesClient(cfg.Images.GoogleMapsKey)
		if err != nil {
			return nil, nil, err
		}
		log.Info("image lookups via google places")
		searcher := utils.NewPlacesImageSearcher(client, PlacesPhotoRoute)
		return searcher, searcher, nil
	default:
		log.Info("image lookups disabled, suggestions use placeholder images")
		return utils.DisabledImageSearcher{}, nil, nil
	}
}

func ProvideNormalizer(images utils.ImageSearcher, cfg *config.Config, log logger.Logger) *services.Normalizer {
	return services.NewNormalizer(images, log, cfg.Images.MaxConcurrency)
}
