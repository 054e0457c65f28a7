package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sized for the suggestion card image area.
const unsplashImageParams = "w=450&h=220&fit=crop&auto=format&q=75"

type UnsplashSearcher struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

func NewUnsplashSearcher(baseURL, accessKey string, timeout time.Duration) *UnsplashSearcher {
	return &UnsplashSearcher{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		BlurHash       string `json:"blur_hash"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImage returns the first landscape photo for query.
func (s *UnsplashSearcher) SearchImage(ctx context.Context, query string) (*ImageResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrImageNotFound
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unsplash returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode unsplash response: %w", err)
	}
	if len(payload.Results) == 0 || payload.Results[0].URLs.Regular == "" {
		return nil, ErrImageNotFound
	}

	photo := payload.Results[0]
	alt := photo.AltDescription
	if alt == "" {
		alt = query
	}
	return &ImageResult{
		URL:      withQueryParams(photo.URLs.Regular, unsplashImageParams),
		BlurHash: photo.BlurHash,
		AltText:  alt,
		Source:   ImageSourceUnsplash,
	}, nil
}

func withQueryParams(rawURL, params string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + params
	}
	return rawURL + "?" + params
}
