package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/middleware"
	"wanderwise/pkg/utils"
)

type RecommendationController struct {
	recommendationService services.RecommendationServiceInterface
}

func NewRecommendationController(recommendationService services.RecommendationServiceInterface) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

// GetSuggestions godoc
// @Summary Suggest destinations
// @Description Generate destination suggestions for a preference set. Send holidayType "SURPRISE_ME" for surprise mode.
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param X-Client-Session header string false "Client session used for last-request-wins"
// @Param preferences body request_models.PreferenceSet true "Travel preferences"
// @Success 200 {object} response_models.RecommendationResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/suggestions [post]
func (rc *RecommendationController) GetSuggestions(c *gin.Context) {
	var prefs request_models.PreferenceSet
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Budget and companions are required")
		return
	}

	resp, err := rc.recommendationService.Recommend(c.Request.Context(), prefs, middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Suggestions generated successfully")
}

// SuggestFromSavedSearch godoc
// @Summary Run a saved search
// @Tags Suggestions
// @Produce json
// @Param id path string true "Saved search ID"
// @Success 200 {object} response_models.RecommendationResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/saved-searches/{id}/suggestions [post]
func (rc *RecommendationController) SuggestFromSavedSearch(c *gin.Context) {
	resp, err := rc.recommendationService.RecommendSaved(
		c.Request.Context(),
		middleware.OwnerID(c),
		c.Param("id"),
		middleware.SessionID(c),
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Suggestions generated successfully")
}
