package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	"wanderwise/internal/models/response_models"
	"wanderwise/internal/repositories"
	"wanderwise/pkg/logger"
	"wanderwise/pkg/utils"
)

const DefaultSavedSearchName = "My Favorite Search"

type SavedSearchServiceInterface interface {
	Create(ctx context.Context, ownerID string, req request_models.CreateSavedSearchRequest) (*response_models.SavedSearchResponse, error)
	List(ctx context.Context, ownerID string) ([]response_models.SavedSearchResponse, error)
	Get(ctx context.Context, ownerID, id string) (*response_models.SavedSearchResponse, error)
	Delete(ctx context.Context, ownerID, id string) error
	Preferences(ctx context.Context, ownerID, id string) (request_models.PreferenceSet, error)
}

type SavedSearchService struct {
	repo repositories.SavedSearchRepositoryInterface
	log  logger.Logger
}

func NewSavedSearchService(repo repositories.SavedSearchRepositoryInterface, log logger.Logger) SavedSearchServiceInterface {
	return &SavedSearchService{repo: repo, log: log}
}

func (s *SavedSearchService) Create(ctx context.Context, ownerID string, req request_models.CreateSavedSearchRequest) (*response_models.SavedSearchResponse, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, utils.ErrInvalidInput
	}
	prefs := req.Preferences.Normalized()
	if prefs.Budget == "" || prefs.Companions == "" {
		return nil, utils.ErrInvalidInput
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = DefaultSavedSearchName
	}

	search := &db_models.SavedSearch{
		OwnerID:     ownerID,
		Name:        name,
		Preferences: toSavedPreferences(prefs),
	}
	if err := s.repo.Create(ctx, search); err != nil {
		s.log.Error("failed to create saved search", logger.String("owner", ownerID), logger.Error(err))
		return nil, utils.ErrDatabaseError
	}

	resp := toSavedSearchResponse(*search)
	return &resp, nil
}

func (s *SavedSearchService) List(ctx context.Context, ownerID string) ([]response_models.SavedSearchResponse, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, utils.ErrInvalidInput
	}
	searches, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list saved searches", logger.String("owner", ownerID), logger.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SavedSearchResponse, 0, len(searches))
	for _, search := range searches {
		out = append(out, toSavedSearchResponse(search))
	}
	return out, nil
}

func (s *SavedSearchService) Get(ctx context.Context, ownerID, id string) (*response_models.SavedSearchResponse, error) {
	search, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := toSavedSearchResponse(*search)
	return &resp, nil
}

func (s *SavedSearchService) Delete(ctx context.Context, ownerID, id string) error {
	searchID, err := uuid.Parse(id)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		return utils.ErrSavedSearchNotFound
	}
	deleted, err := s.repo.Delete(ctx, ownerID, searchID)
	if err != nil {
		s.log.Error("failed to delete saved search", logger.String("id", id), logger.Error(err))
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrSavedSearchNotFound
	}
	return nil
}

// Preferences returns the stored PreferenceSet so it can be submitted again.
func (s *SavedSearchService) Preferences(ctx context.Context, ownerID, id string) (request_models.PreferenceSet, error) {
	search, err := s.load(ctx, ownerID, id)
	if err != nil {
		return request_models.PreferenceSet{}, err
	}
	return fromSavedPreferences(search.Preferences), nil
}

func (s *SavedSearchService) load(ctx context.Context, ownerID, id string) (*db_models.SavedSearch, error) {
	searchID, err := uuid.Parse(id)
	if err != nil || strings.TrimSpace(ownerID) == "" {
		return nil, utils.ErrSavedSearchNotFound
	}
	search, err := s.repo.GetByID(ctx, ownerID, searchID)
	if err != nil {
		s.log.Error("failed to load saved search", logger.String("id", id), logger.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if search == nil {
		return nil, utils.ErrSavedSearchNotFound
	}
	return search, nil
}

func toSavedPreferences(p request_models.PreferenceSet) db_models.SavedPreferences {
	return db_models.SavedPreferences{
		HolidayType: p.HolidayType,
		Budget:      p.Budget,
		Companions:  p.Companions,
		Climate:     p.Climate,
		Interests:   p.Interests,
		Duration:    p.Duration,
		TravelMonth: p.TravelMonth,
	}
}

func fromSavedPreferences(p db_models.SavedPreferences) request_models.PreferenceSet {
	return request_models.PreferenceSet{
		HolidayType: p.HolidayType,
		Budget:      p.Budget,
		Companions:  p.Companions,
		Climate:     p.Climate,
		Interests:   p.Interests,
		Duration:    p.Duration,
		TravelMonth: p.TravelMonth,
	}
}

func toSavedSearchResponse(s db_models.SavedSearch) response_models.SavedSearchResponse {
	return response_models.SavedSearchResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Preferences: fromSavedPreferences(s.Preferences),
		CreatedAt:   utils.FormatUnixRFC3339(s.CreatedAt),
	}
}
