package response_models

// Suggestion is one validated, decorated destination ready for display.
// JSON keys mirror the generation schema so a serialized list can be fed back
// through the normalizer unchanged.
type Suggestion struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	MatchReason       string   `json:"matchReason"`
	DetailedReasoning string   `json:"detailedReasoning"`
	Suitability       string   `json:"suitability"`
	NearestAirports   string   `json:"nearestAirports"`
	MustDoActivities  []string `json:"mustDoActivities,omitempty"`

	MapsURL   string `json:"mapsUrl"`
	SearchURL string `json:"searchUrl"`
	ImagesURL string `json:"imagesUrl"`

	ImageURL    string `json:"imageUrl"`
	BlurHash    string `json:"blurHash,omitempty"`
	ImageAlt    string `json:"imageAlt,omitempty"`
	ImageSource string `json:"imageSource"`
}

type RecommendationResponse struct {
	RequestToken int64        `json:"requestToken,omitempty"`
	Surprise     bool         `json:"surprise"`
	Count        int          `json:"count"`
	Suggestions  []Suggestion `json:"suggestions"`
}

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
	AltText  string `json:"altText"`
	BlurHash string `json:"blurHash,omitempty"`
	Source   string `json:"source"`
}
