package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"wanderwise/internal/models/db_models"
	"wanderwise/pkg/utils"
)

// MemorySavedSearchRepository keeps saved searches in process memory. It is
// used when no Postgres DSN is configured.
type MemorySavedSearchRepository struct {
	mu       sync.RWMutex
	searches []db_models.SavedSearch
	now      func() int64
}

func NewMemorySavedSearchRepository() SavedSearchRepositoryInterface {
	return &MemorySavedSearchRepository{now: utils.NowUnixSeconds}
}

func (r *MemorySavedSearchRepository) Create(_ context.Context, search *db_models.SavedSearch) error {
	if search.ID == uuid.Nil {
		search.ID = uuid.New()
	}
	now := r.now()
	search.CreatedAt = now
	search.UpdatedAt = now

	r.mu.Lock()
	r.searches = append(r.searches, *search)
	r.mu.Unlock()
	return nil
}

// ListByOwner returns newest first; records saved in the same second keep
// reverse insertion order.
func (r *MemorySavedSearchRepository) ListByOwner(_ context.Context, ownerID string) ([]db_models.SavedSearch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]db_models.SavedSearch, 0)
	for i := len(r.searches) - 1; i >= 0; i-- {
		if r.searches[i].OwnerID == ownerID {
			out = append(out, r.searches[i])
		}
	}
	return out, nil
}

func (r *MemorySavedSearchRepository) GetByID(_ context.Context, ownerID string, id uuid.UUID) (*db_models.SavedSearch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.searches {
		if s.ID == id && s.OwnerID == ownerID {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemorySavedSearchRepository) Delete(_ context.Context, ownerID string, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.searches {
		if s.ID == id && s.OwnerID == ownerID {
			r.searches = append(r.searches[:i], r.searches[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
