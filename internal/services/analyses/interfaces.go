package analyses

import (
	"context"
	"time"

	"github.com/killallgit/dialogue-qc/internal/models"
)

// Repository defines the interface for run and analysis data access
type Repository interface {
	// Runs
	CreateRun(ctx context.Context, run *models.Run) error
	UpdateRun(ctx context.Context, run *models.Run) error
	GetRunByUUID(ctx context.Context, id string) (*models.Run, error)

	// Analyses
	CreateAnalysis(ctx context.Context, a *models.Analysis) error
	GetAnalysisByUUID(ctx context.Context, id string) (*models.Analysis, error)
	ListAnalysesByRun(ctx context.Context, runID string, suspiciousOnly bool) ([]models.Analysis, error)

	// Retention
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (PruneResult, error)
}

// Service defines the interface for analysis persistence logic
type Service interface {
	CreateRun(ctx context.Context, scriptID, profile string) (*models.Run, error)
	CompleteRun(ctx context.Context, runID string, summary Summary) (*models.Run, error)
	FailRun(ctx context.Context, runID string) error
	GetRun(ctx context.Context, runID string) (*models.Run, error)

	Record(ctx context.Context, a *models.Analysis) error
	Get(ctx context.Context, id string) (*models.Analysis, error)
	ListByRun(ctx context.Context, runID string, suspiciousOnly bool) ([]models.Analysis, error)

	Prune(ctx context.Context, maxAge time.Duration) (PruneResult, error)
}

// Summary holds the per-run counters
type Summary struct {
	Total      int `json:"total"`
	Clean      int `json:"clean"`
	Suspicious int `json:"suspicious"`
	Failed     int `json:"failed"`
}

// PruneResult counts the rows removed by a retention pass
type PruneResult struct {
	Runs     int64 `json:"runs"`
	Analyses int64 `json:"analyses"`
}
