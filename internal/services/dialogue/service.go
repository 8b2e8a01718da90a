package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/killallgit/dialogue-qc/internal/models"
)

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repository Repository
}

// NewService creates a new dialogue service
func NewService(repository Repository) Service {
	return &ServiceImpl{
		repository: repository,
	}
}

// ImportScript replaces the stored lines of scriptID with those in parsedJSON
// and returns how many dialogue lines were stored.
func (s *ServiceImpl) ImportScript(ctx context.Context, scriptID string, parsedJSON []byte) (int, error) {
	if strings.TrimSpace(scriptID) == "" {
		return 0, fmt.Errorf("%w: script ID is required", ErrInvalidScript)
	}

	lines, err := ExtractLines(scriptID, parsedJSON)
	if err != nil {
		return 0, err
	}
	if err := s.repository.ReplaceScript(ctx, scriptID, lines); err != nil {
		return 0, err
	}
	return len(lines), nil
}

// TextFor resolves the reference text for a "<character>-line-<n>.wav" file.
// Hyphens in the character part are first read as spaces ("mrs-smith" matches
// "MRS SMITH"); the literal upper-cased name is tried second.
func (s *ServiceImpl) TextFor(ctx context.Context, scriptID, filename string) (string, error) {
	character, index, ok := ParseFilename(filename)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnrecognisedFilename, filename)
	}

	upper := strings.ToUpper(character)
	candidates := []string{strings.ReplaceAll(upper, "-", " ")}
	if candidates[0] != upper {
		candidates = append(candidates, upper)
	}

	for _, name := range candidates {
		line, err := s.repository.FindLine(ctx, scriptID, name, index)
		if err == nil {
			if line.Text != "" {
				return line.Text, nil
			}
			continue
		}
		if !errors.Is(err, ErrLineNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrLineNotFound, filename)
}

// Lines returns all stored lines of a script
func (s *ServiceImpl) Lines(ctx context.Context, scriptID string) ([]models.DialogueLine, error) {
	return s.repository.ListLines(ctx, scriptID)
}
