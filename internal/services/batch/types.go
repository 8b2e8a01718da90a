package batch

import (
	"context"
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/models"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
)

// TextResolver looks up the reference text for a dialogue file
type TextResolver interface {
	TextFor(ctx context.Context, scriptID, filename string) (string, error)
}

// Store persists runs and their analyses
type Store interface {
	CreateRun(ctx context.Context, scriptID, profile string) (*models.Run, error)
	CompleteRun(ctx context.Context, runID string, summary analyses.Summary) (*models.Run, error)
	FailRun(ctx context.Context, runID string) error
	Record(ctx context.Context, a *models.Analysis) error
}

// Options configures a Runner
type Options struct {
	Workers    int
	ScriptID   string
	Profile    string
	Thresholds analysis.Thresholds

	// Text, when set, is the reference text for every file
	Text *string
}

// Run describes one completed batch
type Run struct {
	ID         string           `json:"id"`
	ScriptID   string           `json:"script_id,omitempty"`
	Profile    string           `json:"profile,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Summary    analyses.Summary `json:"summary"`
	Persisted  bool             `json:"persisted"`
}

// Item is the outcome for one file
type Item struct {
	Path      string  `json:"path"`
	Source    string  `json:"source"`
	Character string  `json:"character,omitempty"`
	LineIndex *int    `json:"line_index,omitempty"`
	Text      *string `json:"text,omitempty"`
	SizeBytes int64   `json:"size_bytes"`

	// Result is nil when the file could not be analysed
	Result  *analysis.Result `json:"result,omitempty"`
	Verdict analysis.Verdict `json:"verdict"`
	Failed  bool             `json:"failed"`
	Error   string           `json:"error,omitempty"`

	AnalysisID string `json:"analysis_id,omitempty"`
}

// Summarize counts the items by outcome
func Summarize(items []Item) analyses.Summary {
	s := analyses.Summary{Total: len(items)}
	for _, it := range items {
		if it.Failed {
			s.Failed++
		}
		if it.Verdict.IsSuspicious {
			s.Suspicious++
		} else {
			s.Clean++
		}
	}
	return s
}

// toModel converts an item into its persisted form
func toModel(runID string, it Item) *models.Analysis {
	a := &models.Analysis{
		RunID:     runID,
		Source:    it.Source,
		Character: it.Character,
		LineIndex: it.LineIndex,
		SizeBytes: it.SizeBytes,
	}
	if it.Result != nil {
		a.ApplyResult(it.Text, *it.Result)
		return a
	}
	a.Text = it.Text
	a.ApplyFailure(it.Verdict, nil)
	a.ErrorMessage = it.Error
	return a
}
