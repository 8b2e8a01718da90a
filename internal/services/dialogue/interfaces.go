package dialogue

import (
	"context"

	"github.com/killallgit/dialogue-qc/internal/models"
)

// Repository defines the interface for dialogue line data access
type Repository interface {
	ReplaceScript(ctx context.Context, scriptID string, lines []models.DialogueLine) error
	FindLine(ctx context.Context, scriptID, character string, lineIndex int) (*models.DialogueLine, error)
	ListLines(ctx context.Context, scriptID string) ([]models.DialogueLine, error)
}

// Service defines the interface for resolving reference text for audio files
type Service interface {
	ImportScript(ctx context.Context, scriptID string, parsedJSON []byte) (int, error)
	TextFor(ctx context.Context, scriptID, filename string) (string, error)
	Lines(ctx context.Context, scriptID string) ([]models.DialogueLine, error)
}
