package utils

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"googlemaps.github.io/maps"
)

const placesPhotoMaxWidth = 600

// PlacesClient is the subset of *maps.Client used here.
type PlacesClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
	PlacePhoto(ctx context.Context, r *maps.PlacePhotoRequest) (maps.PlacePhotoResponse, error)
}

// PlacesImageSearcher finds destination photos through the Google Places API.
// Photo references are served through this service's own proxy route so the
// Maps key is never handed to the browser.
type PlacesImageSearcher struct {
	client      PlacesClient
	proxyPrefix string
}

func NewPlacesClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// NewPlacesImageSearcher builds a searcher whose image URLs start with proxyPrefix,
// e.g. "/api/images/places/".
func NewPlacesImageSearcher(client PlacesClient, proxyPrefix string) *PlacesImageSearcher {
	if !strings.HasSuffix(proxyPrefix, "/") {
		proxyPrefix += "/"
	}
	return &PlacesImageSearcher{client: client, proxyPrefix: proxyPrefix}
}

func (s *PlacesImageSearcher) SearchImage(ctx context.Context, query string) (*ImageResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrImageNotFound
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	for _, place := range resp.Results {
		for _, photo := range place.Photos {
			if photo.PhotoReference == "" {
				continue
			}
			alt := place.Name
			if alt == "" {
				alt = query
			}
			return &ImageResult{
				URL:     s.proxyPrefix + url.PathEscape(photo.PhotoReference),
				AltText: alt,
				Source:  ImageSourcePlaces,
			}, nil
		}
	}
	return nil, ErrImageNotFound
}

// FetchPhoto streams the bytes behind a photo reference. Callers must close the reader.
func (s *PlacesImageSearcher) FetchPhoto(ctx context.Context, reference string) (io.ReadCloser, string, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, "", ErrImageNotFound
	}
	resp, err := s.client.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       placesPhotoMaxWidth,
	})
	if err != nil {
		return nil, "", fmt.Errorf("places photo error: %w", err)
	}
	return resp.Data, resp.ContentType, nil
}
