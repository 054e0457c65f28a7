package request_models

type CreateSavedSearchRequest struct {
	Name        string        `json:"name"`
	Preferences PreferenceSet `json:"preferences" binding:"required"`
}
