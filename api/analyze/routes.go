package analyze

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
)

// RegisterRoutes registers the analyze endpoint
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/analyze", Post(deps))
}
