package controllers

import (
	"github.com/gin-gonic/gin"

	"wanderwise/internal/catalog"
	"wanderwise/pkg/utils"
)

type CatalogController struct {
	catalog *catalog.Catalog
}

func NewCatalogController(c *catalog.Catalog) *CatalogController {
	return &CatalogController{catalog: c}
}

// GetOptions godoc
// @Summary Preference form options
// @Tags Catalog
// @Produce json
// @Success 200 {object} catalog.Catalog
// @Router /api/options [get]
func (cc *CatalogController) GetOptions(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	utils.RespondSuccess(c, cc.catalog, "Fetched options successfully")
}
