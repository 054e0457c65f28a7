package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUnsplashSearcher(t *testing.T) {
	var gotAuth, gotQuery, gotOrientation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotOrientation = r.URL.Query().Get("orientation")
		switch gotQuery {
		case "Kyoto":
			_, _ = w.Write([]byte(`{"results":[{"alt_description":"red torii gates","blur_hash":"LKO2?U%2Tw=w","urls":{"regular":"https://images.unsplash.com/photo-1?ixid=abc"}}]}`))
		case "Nowhere":
			_, _ = w.Write([]byte(`{"results":[]}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["Rate Limit Exceeded"]}`))
		}
	}))
	defer srv.Close()

	s := NewUnsplashSearcher(srv.URL+"/", "access-key", time.Second)
	ctx := context.Background()

	img, err := s.SearchImage(ctx, " Kyoto ")
	if err != nil {
		t.Fatalf("SearchImage() error = %v", err)
	}
	if gotAuth != "Client-ID access-key" || gotQuery != "Kyoto" || gotOrientation != "landscape" {
		t.Errorf("request: auth=%q query=%q orientation=%q", gotAuth, gotQuery, gotOrientation)
	}
	if img.URL != "https://images.unsplash.com/photo-1?ixid=abc&"+unsplashImageParams {
		t.Errorf("URL = %q", img.URL)
	}
	if img.AltText != "red torii gates" || img.BlurHash == "" || img.Source != ImageSourceUnsplash {
		t.Errorf("image = %+v", img)
	}

	if _, err := s.SearchImage(ctx, "Nowhere"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("empty results error = %v, want ErrImageNotFound", err)
	}
	if _, err := s.SearchImage(ctx, "limited"); err == nil || errors.Is(err, ErrImageNotFound) {
		t.Errorf("403 error = %v, want a provider error", err)
	}
	if _, err := s.SearchImage(ctx, "  "); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("blank query error = %v", err)
	}
}

func TestWithQueryParams(t *testing.T) {
	if got := withQueryParams("https://x/y", "a=1"); got != "https://x/y?a=1" {
		t.Errorf("got %q", got)
	}
	if got := withQueryParams("https://x/y?b=2", "a=1"); got != "https://x/y?b=2&a=1" {
		t.Errorf("got %q", got)
	}
}
