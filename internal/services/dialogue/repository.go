package dialogue

import (
	"context"
	"errors"
	"fmt"

	"github.com/killallgit/dialogue-qc/internal/models"
	"gorm.io/gorm"
)

// RepositoryImpl implements the Repository interface
type RepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new dialogue repository
func NewRepository(db *gorm.DB) Repository {
	return &RepositoryImpl{db: db}
}

// ReplaceScript swaps all stored lines of a script in one transaction
func (r *RepositoryImpl) ReplaceScript(ctx context.Context, scriptID string, lines []models.DialogueLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("script_id = ?", scriptID).Delete(&models.DialogueLine{}).Error; err != nil {
			return fmt.Errorf("clearing script lines: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(lines, 200).Error; err != nil {
			return fmt.Errorf("inserting script lines: %w", err)
		}
		return nil
	})
}

// FindLine retrieves a line by script, upper-cased character and line number
func (r *RepositoryImpl) FindLine(ctx context.Context, scriptID, character string, lineIndex int) (*models.DialogueLine, error) {
	var line models.DialogueLine
	err := r.db.WithContext(ctx).
		Where("script_id = ? AND character = ? AND line_index = ?", scriptID, character, lineIndex).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("getting dialogue line: %w", err)
	}
	return &line, nil
}

// ListLines returns a script's lines in order
func (r *RepositoryImpl) ListLines(ctx context.Context, scriptID string) ([]models.DialogueLine, error) {
	var lines []models.DialogueLine
	if err := r.db.WithContext(ctx).
		Where("script_id = ?", scriptID).
		Order("line_index ASC").
		Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("listing dialogue lines: %w", err)
	}
	return lines, nil
}
