package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/dialogue-qc/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new analyses repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// CreateRun inserts a new run
func (r *RepositoryImpl) CreateRun(ctx context.Context, run *models.Run) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

// UpdateRun saves an existing run
func (r *RepositoryImpl) UpdateRun(ctx context.Context, run *models.Run) error {
	result := r.db.WithContext(ctx).Save(run)
	if result.Error != nil {
		return fmt.Errorf("updating run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetRunByUUID retrieves a run by its public ID
func (r *RepositoryImpl) GetRunByUUID(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	if err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return &run, nil
}

// CreateAnalysis inserts a new analysis
func (r *RepositoryImpl) CreateAnalysis(ctx context.Context, a *models.Analysis) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating analysis: %w", err)
	}
	return nil
}

// GetAnalysisByUUID retrieves an analysis by its public ID
func (r *RepositoryImpl) GetAnalysisByUUID(ctx context.Context, id string) (*models.Analysis, error) {
	var a models.Analysis
	if err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return &a, nil
}

// ListAnalysesByRun returns a run's analyses in insertion order
func (r *RepositoryImpl) ListAnalysesByRun(ctx context.Context, runID string, suspiciousOnly bool) ([]models.Analysis, error) {
	var list []models.Analysis
	q := r.db.WithContext(ctx).Where("run_id = ?", runID)
	if suspiciousOnly {
		q = q.Where("is_suspicious = ?", true)
	}
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing analyses for run: %w", err)
	}
	return list, nil
}

// DeleteOlderThan removes finished runs created before cutoff together with
// their analyses, plus ad-hoc analyses older than cutoff. Running runs are kept.
func (r *RepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (PruneResult, error) {
	var result PruneResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var runIDs []string
		if err := tx.Model(&models.Run{}).
			Where("created_at < ? AND status <> ?", cutoff, models.RunStatusRunning).
			Pluck("uuid", &runIDs).Error; err != nil {
			return fmt.Errorf("selecting expired runs: %w", err)
		}

		q := tx.Where("run_id = '' AND created_at < ?", cutoff)
		if len(runIDs) > 0 {
			q = tx.Where("run_id IN ?", runIDs).Or("run_id = '' AND created_at < ?", cutoff)
		}
		deleted := q.Delete(&models.Analysis{})
		if deleted.Error != nil {
			return fmt.Errorf("deleting expired analyses: %w", deleted.Error)
		}
		result.Analyses = deleted.RowsAffected

		if len(runIDs) == 0 {
			return nil
		}
		deleted = tx.Where("uuid IN ?", runIDs).Delete(&models.Run{})
		if deleted.Error != nil {
			return fmt.Errorf("deleting expired runs: %w", deleted.Error)
		}
		result.Runs = deleted.RowsAffected
		return nil
	})
	return result, err
}
