package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
)

const defaultVersion = "dev"

// Get handles version requests
// @Summary      Service version
// @Tags         health
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       /version [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := defaultVersion
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:        "Dialogue QC API",
			Version:     version,
			Description: "Corruption detection for synthesized dialogue audio",
			Status:      "running",
		})
	}
}
