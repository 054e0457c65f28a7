package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderwise/internal/models/response_models"
	"wanderwise/pkg/utils"
)

const imageUnavailableMessage = "The image service is unavailable right now, please try again."

type ImageController struct {
	searcher utils.ImageSearcher
	photos   utils.PhotoFetcher
}

// NewImageController takes a nil photos when the image provider serves
// public URLs.
func NewImageController(searcher utils.ImageSearcher, photos utils.PhotoFetcher) *ImageController {
	return &ImageController{searcher: searcher, photos: photos}
}

// SearchImage godoc
// @Summary Find one photo for a destination
// @Tags Images
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {object} response_models.ImageResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /api/images [get]
func (ic *ImageController) SearchImage(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter is required")
		return
	}

	img, err := ic.searcher.SearchImage(c.Request.Context(), query)
	if err != nil {
		utils.HandleServiceError(c, imageProviderError(err))
		return
	}

	utils.RespondSuccess(c, response_models.ImageResponse{
		ImageURL: img.URL,
		AltText:  img.AltText,
		BlurHash: img.BlurHash,
		Source:   img.Source,
	}, "Image found")
}

// PlacesPhoto streams a Google Places photo so the Maps key stays on the server.
func (ic *ImageController) PlacesPhoto(c *gin.Context) {
	if ic.photos == nil {
		utils.HandleServiceError(c, utils.ErrImageServiceDisabled)
		return
	}

	body, contentType, err := ic.photos.FetchPhoto(c.Request.Context(), c.Param("ref"))
	if err != nil {
		utils.HandleServiceError(c, imageProviderError(err))
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}

// imageProviderError reports transport, auth and quota failures of the image
// provider as upstream failures.
func imageProviderError(err error) error {
	if errors.Is(err, utils.ErrImageNotFound) || errors.Is(err, utils.ErrImageServiceDisabled) {
		return err
	}
	var genErr *utils.GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return utils.NewGenerationError(utils.ErrUpstreamFailure, imageUnavailableMessage, err)
}
