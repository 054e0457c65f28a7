package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/logger"
	mem "wanderwise/pkg/memcache"
	"wanderwise/pkg/utils"
)

type fakeGenerator struct {
	mu       sync.Mutex
	requests []utils.GenerationRequest
	result   utils.GenerationResult
	err      error
	// block, when set, is waited on before returning.
	block chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, req utils.GenerationRequest) (utils.GenerationResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return utils.GenerationResult{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func newTestRecommendationService(gen utils.TextGenerator, tokens mem.RequestTokenStore) (RecommendationServiceInterface, SavedSearchServiceInterface) {
	log := logger.NewNop()
	saved := NewSavedSearchService(repositories.NewMemorySavedSearchRepository(), log)
	svc := NewRecommendationService(
		NewComposer(DefaultNormalTemperature, DefaultSurpriseTemperature),
		gen,
		NewNormalizer(nil, log, 0),
		tokens,
		saved,
		log,
	)
	return svc, saved
}

func TestRecommendHappyPath(t *testing.T) {
	gen := &fakeGenerator{result: utils.GenerationResult{Text: `{"suggestions":[` + kyotoJSON + `,` + lisbonJSON + `]}`, Model: "test-model"}}
	svc, _ := newTestRecommendationService(gen, mem.NewRequestTokens(time.Minute))

	resp, err := svc.Recommend(context.Background(), fullPreferences(), "session-1")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Count != 2 || len(resp.Suggestions) != 2 {
		t.Fatalf("Count = %d, suggestions = %d", resp.Count, len(resp.Suggestions))
	}
	if resp.RequestToken != 1 {
		t.Errorf("RequestToken = %d, want 1", resp.RequestToken)
	}
	if resp.Surprise {
		t.Error("Surprise should be false")
	}
	if len(gen.requests) != 1 || !strings.Contains(gen.requests[0].Prompt, "Mid-Range") {
		t.Errorf("generator did not receive the composed prompt: %+v", gen.requests)
	}
}

func TestRecommendValidatesRequiredFields(t *testing.T) {
	gen := &fakeGenerator{}
	svc, _ := newTestRecommendationService(gen, nil)

	_, err := svc.Recommend(context.Background(), request_models.PreferenceSet{HolidayType: "Cultural", Budget: " "}, "")
	if !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("error = %v, want invalid input", err)
	}
	if len(gen.requests) != 0 {
		t.Error("generator must not be called for invalid input")
	}
}

func TestRecommendWrapsUpstreamErrors(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("dial tcp: connection refused")}
	svc, _ := newTestRecommendationService(gen, nil)

	_, err := svc.Recommend(context.Background(), fullPreferences(), "")
	if !errors.Is(err, utils.ErrUpstreamFailure) {
		t.Fatalf("error = %v, want upstream failure", err)
	}
}

func TestRecommendPassesGenerationErrorsThrough(t *testing.T) {
	gen := &fakeGenerator{result: utils.GenerationResult{Text: `{"foo":"bar"}`}}
	svc, _ := newTestRecommendationService(gen, nil)

	_, err := svc.Recommend(context.Background(), fullPreferences(), "")
	if !errors.Is(err, utils.ErrUnexpectedShape) {
		t.Fatalf("error = %v, want unexpected shape", err)
	}
}

func TestRecommendLastRequestWins(t *testing.T) {
	block := make(chan struct{})
	slow := &fakeGenerator{result: utils.GenerationResult{Text: `[` + kyotoJSON + `]`}, block: block}
	tokens := mem.NewRequestTokens(time.Minute)
	svc, _ := newTestRecommendationService(slow, tokens)

	errc := make(chan error, 1)
	go func() {
		_, err := svc.Recommend(context.Background(), fullPreferences(), "tab-1")
		errc <- err
	}()

	// Wait until the first request holds its token, then supersede it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if latest, _ := tokens.Latest(context.Background(), "tab-1"); latest == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first request never issued a token")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := tokens.Issue(context.Background(), "tab-1"); err != nil {
		t.Fatal(err)
	}
	close(block)

	if err := <-errc; !errors.Is(err, utils.ErrStaleRequest) {
		t.Fatalf("first request error = %v, want stale request", err)
	}

	// Another session is unaffected.
	resp, err := svc.Recommend(context.Background(), fullPreferences(), "tab-2")
	if err != nil || resp.RequestToken != 1 {
		t.Fatalf("independent session: resp=%+v err=%v", resp, err)
	}
}

// supersede starts a request for session, waits until it holds token 1, issues
// a newer token and releases the generator. It returns the first request's error.
func supersede(t *testing.T, svc RecommendationServiceInterface, tokens mem.RequestTokenStore, block chan struct{}, session string) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() {
		_, err := svc.Recommend(context.Background(), fullPreferences(), session)
		errc <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if latest, _ := tokens.Latest(context.Background(), session); latest == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first request never issued a token")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := tokens.Issue(context.Background(), session); err != nil {
		t.Fatal(err)
	}
	close(block)
	return <-errc
}

func TestRecommendSupersededFailureIsStale(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"bad output", &fakeGenerator{result: utils.GenerationResult{Text: `{"foo":"bar"}`}}},
		{"upstream error", &fakeGenerator{err: errors.New("dial tcp: connection refused")}},
		{"truncated", &fakeGenerator{result: utils.GenerationResult{Text: `[{"name":"Kyo`, Truncated: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.gen.block = make(chan struct{})
			tokens := mem.NewRequestTokens(time.Minute)
			svc, _ := newTestRecommendationService(tt.gen, tokens)

			err := supersede(t, svc, tokens, tt.gen.block, "tab-1")
			if !errors.Is(err, utils.ErrStaleRequest) {
				t.Fatalf("error = %v (code %q), want stale request", err, utils.GenerationErrorCode(err))
			}
		})
	}
}

type countingImages struct {
	mu    sync.Mutex
	calls int
}

func (c *countingImages) SearchImage(context.Context, string) (*utils.ImageResult, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return nil, utils.ErrImageNotFound
}

func TestRecommendSupersededSkipsImageLookups(t *testing.T) {
	gen := &fakeGenerator{result: utils.GenerationResult{Text: `[` + kyotoJSON + `,` + lisbonJSON + `]`}, block: make(chan struct{})}
	tokens := mem.NewRequestTokens(time.Minute)
	images := &countingImages{}
	log := logger.NewNop()
	svc := NewRecommendationService(
		NewComposer(DefaultNormalTemperature, DefaultSurpriseTemperature),
		gen,
		NewNormalizer(images, log, 0),
		tokens,
		NewSavedSearchService(repositories.NewMemorySavedSearchRepository(), log),
		log,
	)

	if err := supersede(t, svc, tokens, gen.block, "tab-1"); !errors.Is(err, utils.ErrStaleRequest) {
		t.Fatalf("error = %v, want stale request", err)
	}
	if images.calls != 0 {
		t.Errorf("image lookups = %d, want 0 for a superseded request", images.calls)
	}
}

func TestRecommendSurpriseUsesSurpriseRequest(t *testing.T) {
	gen := &fakeGenerator{result: utils.GenerationResult{Text: `[` + kyotoJSON + `]`}}
	svc, _ := newTestRecommendationService(gen, nil)

	prefs := request_models.PreferenceSet{HolidayType: request_models.SurpriseSentinel, Budget: "Premium", Companions: "Solo"}
	resp, err := svc.Recommend(context.Background(), prefs, "")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !resp.Surprise || resp.RequestToken != 0 {
		t.Errorf("resp = %+v, want surprise without token", resp)
	}
	if gen.requests[0].Count != SurpriseCount || gen.requests[0].Temperature != DefaultSurpriseTemperature {
		t.Errorf("generation request = %+v", gen.requests[0])
	}
}

func TestRecommendSaved(t *testing.T) {
	gen := &fakeGenerator{result: utils.GenerationResult{Text: `[` + lisbonJSON + `]`}}
	svc, saved := newTestRecommendationService(gen, nil)
	ctx := context.Background()

	created, err := saved.Create(ctx, "owner-1", request_models.CreateSavedSearchRequest{Name: "Weekend", Preferences: fullPreferences()})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	resp, err := svc.RecommendSaved(ctx, "owner-1", created.ID, "")
	if err != nil {
		t.Fatalf("RecommendSaved() error = %v", err)
	}
	if resp.Count != 1 || resp.Suggestions[0].Name != "Lisbon" {
		t.Errorf("unexpected response %+v", resp)
	}
	if !strings.Contains(gen.requests[0].Prompt, "natural wine, street markets") {
		t.Error("saved preferences were not used for the prompt")
	}

	if _, err := svc.RecommendSaved(ctx, "owner-2", created.ID, ""); !errors.Is(err, utils.ErrSavedSearchNotFound) {
		t.Errorf("other owner: error = %v, want not found", err)
	}
}
