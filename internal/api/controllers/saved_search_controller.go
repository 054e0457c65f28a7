package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wanderwise/internal/models/request_models"
	"wanderwise/internal/services"
	"wanderwise/pkg/middleware"
	"wanderwise/pkg/utils"
)

type SavedSearchController struct {
	savedSearchService services.SavedSearchServiceInterface
}

func NewSavedSearchController(savedSearchService services.SavedSearchServiceInterface) *SavedSearchController {
	return &SavedSearchController{
		savedSearchService: savedSearchService,
	}
}

// ListSavedSearches godoc
// @Summary List saved searches
// @Description Newest first, scoped to the caller
// @Tags SavedSearch
// @Produce json
// @Success 200 {array} response_models.SavedSearchResponse
// @Router /api/saved-searches [get]
func (sc *SavedSearchController) ListSavedSearches(c *gin.Context) {
	searches, err := sc.savedSearchService.List(c.Request.Context(), middleware.OwnerID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, searches, "Fetched saved searches successfully")
}

// CreateSavedSearch godoc
// @Summary Save a preference set
// @Tags SavedSearch
// @Accept json
// @Produce json
// @Param request body request_models.CreateSavedSearchRequest true "Name and preferences"
// @Success 201 {object} response_models.SavedSearchResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/saved-searches [post]
func (sc *SavedSearchController) CreateSavedSearch(c *gin.Context) {
	var req request_models.CreateSavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	search, err := sc.savedSearchService.Create(c.Request.Context(), middleware.OwnerID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondStatus(c, http.StatusCreated, search, "Search saved")
}

func (sc *SavedSearchController) GetSavedSearch(c *gin.Context) {
	search, err := sc.savedSearchService.Get(c.Request.Context(), middleware.OwnerID(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, search, "Fetched saved search successfully")
}

func (sc *SavedSearchController) DeleteSavedSearch(c *gin.Context) {
	if err := sc.savedSearchService.Delete(c.Request.Context(), middleware.OwnerID(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Saved search deleted")
}
