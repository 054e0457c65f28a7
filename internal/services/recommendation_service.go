package services

import (
	"context"
	"errors"
	"time"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/logger"
	mem "wanderwise/pkg/memcache"
	"wanderwise/pkg/utils"
)

type RecommendationServiceInterface interface {
	// Recommend runs one preference set through compose, generate and normalize.
	// A non-empty session enables "last request wins": if another request from the
	// same session started meanwhile, the outcome, error or not, is dropped with
	// ErrStaleRequest.
	Recommend(ctx context.Context, prefs request_models.PreferenceSet, session string) (*response_models.RecommendationResponse, error)
	RecommendSaved(ctx context.Context, ownerID, savedSearchID, session string) (*response_models.RecommendationResponse, error)
}

type RecommendationService struct {
	composer      *Composer
	generator     utils.TextGenerator
	normalizer    *Normalizer
	tokens        mem.RequestTokenStore
	savedSearches SavedSearchServiceInterface
	log           logger.Logger
}

func NewRecommendationService(
	composer *Composer,
	generator utils.TextGenerator,
	normalizer *Normalizer,
	tokens mem.RequestTokenStore,
	savedSearches SavedSearchServiceInterface,
	log logger.Logger,
) RecommendationServiceInterface {
	return &RecommendationService{
		composer:      composer,
		generator:     generator,
		normalizer:    normalizer,
		tokens:        tokens,
		savedSearches: savedSearches,
		log:           log,
	}
}

func (r *RecommendationService) Recommend(ctx context.Context, prefs request_models.PreferenceSet, session string) (*response_models.RecommendationResponse, error) {
	prefs = prefs.Normalized()
	if prefs.Budget == "" || prefs.Companions == "" {
		return nil, utils.ErrInvalidInput
	}

	token := r.issueToken(ctx, session)
	start := time.Now()

	req := r.composer.Compose(prefs)
	result, err := r.generator.Generate(ctx, req)
	if r.isStale(ctx, session, token) {
		return nil, r.discard(session, token)
	}
	if err != nil {
		var genErr *utils.GenerationError
		if !errors.As(err, &genErr) {
			err = utils.NewGenerationError(utils.ErrUpstreamFailure, "", err)
		}
		r.log.Error("text generation failed",
			logger.String("code", utils.GenerationErrorCode(err)),
			logger.Bool("surprise", req.Surprise),
			logger.Duration("elapsed", time.Since(start)),
			logger.Error(err),
		)
		return nil, err
	}

	suggestions, err := r.normalizer.Normalize(ctx, result)
	if r.isStale(ctx, session, token) {
		return nil, r.discard(session, token)
	}
	if err != nil {
		return nil, err
	}

	r.log.Info("recommendation ready",
		logger.Bool("surprise", req.Surprise),
		logger.Int("count", len(suggestions)),
		logger.String("model", result.Model),
		logger.Duration("elapsed", time.Since(start)),
	)
	return &response_models.RecommendationResponse{
		RequestToken: token,
		Surprise:     req.Surprise,
		Count:        len(suggestions),
		Suggestions:  suggestions,
	}, nil
}

func (r *RecommendationService) RecommendSaved(ctx context.Context, ownerID, savedSearchID, session string) (*response_models.RecommendationResponse, error) {
	prefs, err := r.savedSearches.Preferences(ctx, ownerID, savedSearchID)
	if err != nil {
		return nil, err
	}
	return r.Recommend(ctx, prefs, session)
}

// issueToken returns 0 when no session is given or the store is unavailable;
// such requests are never treated as stale.
func (r *RecommendationService) issueToken(ctx context.Context, session string) int64 {
	if session == "" || r.tokens == nil {
		return 0
	}
	token, err := r.tokens.Issue(ctx, session)
	if err != nil {
		r.log.Warn("request token unavailable", logger.String("session", session), logger.Error(err))
		return 0
	}
	return token
}

// discard drops the outcome of a superseded request, successful or not.
func (r *RecommendationService) discard(session string, token int64) error {
	r.log.Info("discarding superseded recommendation", logger.String("session", session), logger.Int64("token", token))
	return utils.ErrStaleRequest
}

func (r *RecommendationService) isStale(ctx context.Context, session string, token int64) bool {
	if token == 0 {
		return false
	}
	latest, err := r.tokens.Latest(ctx, session)
	if err != nil {
		r.log.Warn("request token check failed", logger.String("session", session), logger.Error(err))
		return false
	}
	return latest > token
}
