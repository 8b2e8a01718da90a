package types

import (
	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/killallgit/dialogue-qc/internal/models"
)

// Status constants for API responses
const (
	StatusOK     = "ok"
	StatusError  = "error"
	StatusFailed = "failed"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`   // Error code
	Details any    `json:"details,omitempty"` // Additional error details
}

// AnalyzeResponse is returned by the single-file analyze endpoint.
// Metrics is absent when the upload could not be analysed.
type AnalyzeResponse struct {
	BaseResponse
	AnalysisID string                          `json:"analysis_id,omitempty"`
	Filename   string                          `json:"filename"`
	Audio      *audio.Metadata                 `json:"audio,omitempty"`
	Metrics    *analysis.SignalMetrics         `json:"metrics,omitempty"`
	WordCount  *int                            `json:"word_count,omitempty"`
	Expected   *analysis.ExpectedDurationRange `json:"expected,omitempty"`
	Verdict    analysis.Verdict                `json:"verdict"`
	Reason     string                          `json:"reason"`
	Error      string                          `json:"error,omitempty"`
	Code       string                          `json:"code,omitempty"` // DECODE_FAILED or INVALID_AUDIO on failure
}

// RunResponse wraps a persisted batch run
type RunResponse struct {
	BaseResponse
	Run *models.Run `json:"run"`
}

// AnalysesResponse lists persisted analyses
type AnalysesResponse struct {
	BaseResponse
	Analyses []models.Analysis `json:"analyses"`
	Count    int               `json:"count"`
}

// AnalysisResponse wraps one persisted analysis
type AnalysisResponse struct {
	BaseResponse
	Analysis *models.Analysis `json:"analysis"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Database  map[string]any `json:"database"`
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
