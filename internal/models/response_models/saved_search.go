package response_models

import "wanderwise/internal/models/request_models"

type SavedSearchResponse struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Preferences request_models.PreferenceSet `json:"preferences"`
	CreatedAt   string                       `json:"createdAt"`
}
