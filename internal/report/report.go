// Package report turns batch results into JSON and console reports
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
	"github.com/killallgit/dialogue-qc/internal/services/batch"
)

// maxTextLength is how much dialogue text a report row keeps
const maxTextLength = 50

// Entry is one report row. Durations are rounded to 2 decimal places and
// signal metrics to 4.
type Entry struct {
	File             string          `json:"filepath"`
	DialogueText     *string         `json:"dialogue_text"`
	WordCount        *int            `json:"word_count"`
	ActualDuration   *float64        `json:"actual_duration,omitempty"`
	ExpectedMin      *float64        `json:"expected_min"`
	ExpectedMax      *float64        `json:"expected_max"`
	DurationRatio    *float64        `json:"duration_ratio"`
	FileSizeMB       float64         `json:"file_size_mb"`
	RMSEnergy        *float64        `json:"rms_energy,omitempty"`
	ZeroCrossingRate *float64        `json:"zero_crossing_rate,omitempty"`
	SpectralFlatness *float64        `json:"spectral_flatness,omitempty"`
	IsSuspicious     bool            `json:"is_suspicious"`
	Reason           string          `json:"reason"`
	Rules            []analysis.Rule `json:"rules"`
	Error            string          `json:"error,omitempty"`
	AnalysisID       string          `json:"analysis_id,omitempty"`
}

// Report is the full output of one run
type Report struct {
	RunID       string           `json:"run_id"`
	ScriptID    string           `json:"script_id,omitempty"`
	Profile     string           `json:"profile,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	Summary     analyses.Summary `json:"summary"`

	// SuspiciousFiles is ordered most abnormal duration first
	SuspiciousFiles []Entry `json:"suspicious_files"`
	AllResults      []Entry `json:"all_results"`
}

// Build assembles a report from a run and its items
func Build(run *batch.Run, items []batch.Item) *Report {
	r := &Report{
		RunID:           run.ID,
		ScriptID:        run.ScriptID,
		Profile:         run.Profile,
		GeneratedAt:     run.FinishedAt,
		Summary:         batch.Summarize(items),
		SuspiciousFiles: []Entry{},
		AllResults:      make([]Entry, 0, len(items)),
	}

	for _, it := range items {
		e := newEntry(it)
		r.AllResults = append(r.AllResults, e)
		if e.IsSuspicious {
			r.SuspiciousFiles = append(r.SuspiciousFiles, e)
		}
	}

	sort.SliceStable(r.SuspiciousFiles, func(i, j int) bool {
		return deviation(r.SuspiciousFiles[i]) > deviation(r.SuspiciousFiles[j])
	})
	return r
}

// deviation is |ratio - 1|, or 0 without a ratio
func deviation(e Entry) float64 {
	if e.DurationRatio == nil {
		return 0
	}
	return math.Abs(*e.DurationRatio - 1)
}

func newEntry(it batch.Item) Entry {
	e := Entry{
		File:         it.Source,
		DialogueText: truncate(it.Text),
		FileSizeMB:   round(float64(it.SizeBytes)/(1024*1024), 2),
		IsSuspicious: it.Verdict.IsSuspicious,
		Reason:       it.Verdict.Summary(),
		Rules:        it.Verdict.Rules,
		Error:        it.Error,
		AnalysisID:   it.AnalysisID,
	}
	if e.Rules == nil {
		e.Rules = []analysis.Rule{}
	}
	e.DurationRatio = roundPtr(it.Verdict.DurationRatio, 2)

	res := it.Result
	if res == nil {
		return e
	}

	e.WordCount = res.WordCount
	e.ActualDuration = ptr(round(res.Metrics.DurationSeconds, 2))
	e.RMSEnergy = ptr(round(res.Metrics.RMSEnergy, 4))
	e.ZeroCrossingRate = ptr(round(res.Metrics.ZeroCrossingRate, 4))
	e.SpectralFlatness = ptr(round(res.Metrics.SpectralFlatness, 4))
	if res.Expected != nil {
		e.ExpectedMin = ptr(round(res.Expected.MinSeconds, 2))
		e.ExpectedMax = ptr(round(res.Expected.MaxSeconds, 2))
	}
	return e
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteFile writes the JSON report to path
func WriteFile(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func truncate(text *string) *string {
	if text == nil {
		return nil
	}
	runes := []rune(*text)
	if len(runes) <= maxTextLength {
		s := *text
		return &s
	}
	s := string(runes[:maxTextLength]) + "..."
	return &s
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func roundPtr(v *float64, places int) *float64 {
	if v == nil {
		return nil
	}
	return ptr(round(*v, places))
}

func ptr[T any](v T) *T {
	return &v
}
