package utils

import (
	"context"
	"io"
)

const (
	ImageSourceUnsplash    = "unsplash"
	ImageSourcePlaces      = "google_places"
	ImageSourcePlaceholder = "placeholder"
)

type ImageResult struct {
	URL      string
	BlurHash string
	AltText  string
	Source   string
}

// ImageSearcher looks up one photo for a short query. No match is reported as
// ErrImageNotFound.
type ImageSearcher interface {
	SearchImage(ctx context.Context, query string) (*ImageResult, error)
}

// DisabledImageSearcher is used when no image provider is configured; every
// suggestion falls back to its placeholder.
type DisabledImageSearcher struct{}

func (DisabledImageSearcher) SearchImage(context.Context, string) (*ImageResult, error) {
	return nil, ErrImageServiceDisabled
}

// PhotoFetcher streams image bytes for providers whose photo URLs cannot be
// handed to the browser directly.
type PhotoFetcher interface {
	FetchPhoto(ctx context.Context, reference string) (io.ReadCloser, string, error)
}
