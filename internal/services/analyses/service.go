package analyses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/killallgit/dialogue-qc/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new analyses service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
	}
}

// CreateRun starts a new batch run
func (s *ServiceImpl) CreateRun(ctx context.Context, scriptID, profile string) (*models.Run, error) {
	run := &models.Run{
		ScriptID: scriptID,
		Profile:  profile,
		Status:   models.RunStatusRunning,
	}
	if err := s.repository.CreateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// CompleteRun records the summary counters and marks the run completed
func (s *ServiceImpl) CompleteRun(ctx context.Context, runID string, summary Summary) (*models.Run, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrRunFinished, runID)
	}

	now := time.Now().UTC()
	run.Status = models.RunStatusCompleted
	run.Total = summary.Total
	run.Clean = summary.Clean
	run.Suspicious = summary.Suspicious
	run.Failed = summary.Failed
	run.CompletedAt = &now

	if err := s.repository.UpdateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// FailRun marks a run as failed, typically after cancellation
func (s *ServiceImpl) FailRun(ctx context.Context, runID string) error {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run.IsTerminal() {
		return nil
	}
	now := time.Now().UTC()
	run.Status = models.RunStatusFailed
	run.CompletedAt = &now
	return s.repository.UpdateRun(ctx, run)
}

// GetRun retrieves a run by ID
func (s *ServiceImpl) GetRun(ctx context.Context, runID string) (*models.Run, error) {
	if strings.TrimSpace(runID) == "" {
		return nil, ErrInvalidRunID
	}
	return s.repository.GetRunByUUID(ctx, runID)
}

// Record persists one analysis
func (s *ServiceImpl) Record(ctx context.Context, a *models.Analysis) error {
	if a.Source == "" {
		return fmt.Errorf("source is required")
	}
	return s.repository.CreateAnalysis(ctx, a)
}

// Get retrieves an analysis by ID
func (s *ServiceImpl) Get(ctx context.Context, id string) (*models.Analysis, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrAnalysisNotFound
	}
	return s.repository.GetAnalysisByUUID(ctx, id)
}

// ListByRun returns a run's analyses, optionally only the suspicious ones
func (s *ServiceImpl) ListByRun(ctx context.Context, runID string, suspiciousOnly bool) ([]models.Analysis, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.repository.ListAnalysesByRun(ctx, runID, suspiciousOnly)
}

// Prune deletes finished runs and ad-hoc analyses older than maxAge
func (s *ServiceImpl) Prune(ctx context.Context, maxAge time.Duration) (PruneResult, error) {
	if maxAge <= 0 {
		return PruneResult{}, fmt.Errorf("%w: %s", ErrInvalidRetention, maxAge)
	}
	return s.repository.DeleteOlderThan(ctx, time.Now().UTC().Add(-maxAge))
}
