package types

import (
	"log/slog"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/database"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
)

// ThresholdSource resolves classifier thresholds by profile name
type ThresholdSource interface {
	Thresholds(profile string) analysis.Thresholds
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	AnalysisService analyses.Service
	Profiles        ThresholdSource
	Logger          *slog.Logger
	Version         string
}

// ThresholdsFor resolves a profile, falling back to the calibrated defaults
func (d *Dependencies) ThresholdsFor(profile string) analysis.Thresholds {
	if d == nil || d.Profiles == nil {
		return analysis.DefaultThresholds()
	}
	return d.Profiles.Thresholds(profile)
}

// Log returns the configured logger or the default one
func (d *Dependencies) Log() *slog.Logger {
	if d == nil || d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}
