package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wanderwise/internal/models/db_models"
)

// SavedSearchRepositoryInterface stores saved searches per owner. Get returns
// nil, nil when the record does not exist or belongs to someone else.
type SavedSearchRepositoryInterface interface {
	Create(ctx context.Context, search *db_models.SavedSearch) error
	ListByOwner(ctx context.Context, ownerID string) ([]db_models.SavedSearch, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*db_models.SavedSearch, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) (bool, error)
}

type SavedSearchRepository struct {
	db *gorm.DB
}

func NewSavedSearchRepository(db *gorm.DB) SavedSearchRepositoryInterface {
	return &SavedSearchRepository{db: db}
}

func (r *SavedSearchRepository) Create(ctx context.Context, search *db_models.SavedSearch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(search).Error
	})
}

func (r *SavedSearchRepository) ListByOwner(ctx context.Context, ownerID string) ([]db_models.SavedSearch, error) {
	var searches []db_models.SavedSearch
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&searches).Error
	if err != nil {
		return nil, err
	}
	return searches, nil
}

func (r *SavedSearchRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*db_models.SavedSearch, error) {
	var search db_models.SavedSearch
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&search).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &search, nil
}

func (r *SavedSearchRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&db_models.SavedSearch{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
