package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Report service liveness and database connectivity
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}

		status := http.StatusOK
		if response.Database["status"] == "unhealthy" {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]any {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]any{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return map[string]any{"status": "unhealthy", "connected": false, "error": err.Error()}
	}

	return map[string]any{"status": "connected", "connected": true}
}
