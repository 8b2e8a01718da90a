package runs

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/dialogue-qc/api/types"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
)

// GetRun retrieves a batch run
// @Summary      Get run
// @Description  Retrieve a persisted batch run with its summary counters
// @Tags         runs
// @Produce      json
// @Param        id path string true "Run ID"
// @Success      200 {object} types.RunResponse
// @Failure      404 {object} types.ErrorResponse "Run not found"
// @Router       /api/v1/runs/{id} [get]
func GetRun(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		run, err := deps.AnalysisService.GetRun(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.RunResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Run:          run,
		})
	}
}

// GetRunAnalyses lists the analyses recorded for a run
// @Summary      List run analyses
// @Description  List the analyses of a batch run in processing order, optionally only the suspicious ones
// @Tags         runs
// @Produce      json
// @Param        id         path  string true  "Run ID"
// @Param        suspicious query bool   false "Only suspicious analyses"
// @Success      200 {object} types.AnalysesResponse
// @Failure      400 {object} types.ErrorResponse "Invalid query"
// @Failure      404 {object} types.ErrorResponse "Run not found"
// @Router       /api/v1/runs/{id}/analyses [get]
func GetRunAnalyses(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		suspiciousOnly := false
		if raw := c.Query("suspicious"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				types.SendError(c, apperrors.ValidationError("suspicious", "must be a boolean"))
				return
			}
			suspiciousOnly = v
		}

		list, err := deps.AnalysisService.ListByRun(c.Request.Context(), id, suspiciousOnly)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.AnalysesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Analyses:     list,
			Count:        len(list),
		})
	}
}

// GetAnalysis retrieves one analysis
// @Summary      Get analysis
// @Tags         analysis
// @Produce      json
// @Param        id path string true "Analysis ID"
// @Success      200 {object} types.AnalysisResponse
// @Failure      404 {object} types.ErrorResponse "Analysis not found"
// @Router       /api/v1/analyses/{id} [get]
func GetAnalysis(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		a, err := deps.AnalysisService.Get(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.AnalysisResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Analysis:     a,
		})
	}
}
