package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/dialogue-qc/api/analyze"
	_ "github.com/killallgit/dialogue-qc/api/docs"
	"github.com/killallgit/dialogue-qc/api/health"
	"github.com/killallgit/dialogue-qc/api/runs"
	"github.com/killallgit/dialogue-qc/api/types"
	"github.com/killallgit/dialogue-qc/api/version"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
)

// RegisterRoutes registers all API routes. rateLimit may be nil.
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimit gin.HandlerFunc) error {
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")
	if rateLimit != nil {
		v1.Use(rateLimit)
	}

	// Initialize the analysis service if the database is available
	if deps.AnalysisService == nil && deps.DB != nil && deps.DB.DB != nil {
		deps.AnalysisService = analyses.NewService(analyses.NewRepository(deps.DB.DB))
	}

	analyze.RegisterRoutes(v1, deps)

	// Lookups need persistence
	if deps.AnalysisService != nil {
		runs.RegisterRoutes(v1, deps)
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
