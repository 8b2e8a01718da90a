package runs

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
)

// RegisterRoutes registers run and analysis lookup routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	runsGroup := router.Group("/runs")
	{
		runsGroup.GET("/:id", GetRun(deps))
		runsGroup.GET("/:id/analyses", GetRunAnalyses(deps))
	}

	router.GET("/analyses/:id", GetAnalysis(deps))
}
