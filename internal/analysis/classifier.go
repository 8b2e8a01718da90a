package analysis

import (
	"fmt"
	"strings"
)

// Rule identifies a classifier rule in a machine-checkable way
type Rule string

const (
	RuleNoiseSpectrum Rule = "noise_spectrum"
	RuleErraticSignal Rule = "erratic_signal"
	RuleLowEnergy     Rule = "low_energy"
	RuleTooLong       Rule = "too_long"
	RuleTooShort      Rule = "too_short"
	RuleReviewLength  Rule = "review_length"

	// RuleAnalysisFailed marks audio that could not be decoded or measured
	RuleAnalysisFailed Rule = "analysis_failed"
)

// Blocking reports whether a triggered rule marks the clip as suspicious
func (r Rule) Blocking() bool {
	return r != RuleReviewLength
}

// Verdict is the classifier output for one waveform.
// Reasons and Rules are parallel and ordered by rule evaluation.
type Verdict struct {
	IsSuspicious  bool     `json:"is_suspicious"`
	Reasons       []string `json:"reasons"`
	Rules         []Rule   `json:"rules"`
	DurationRatio *float64 `json:"duration_ratio,omitempty"`
}

// NeedsReview reports whether a non-blocking rule fired
func (v Verdict) NeedsReview() bool {
	for _, r := range v.Rules {
		if !r.Blocking() {
			return true
		}
	}
	return false
}

// Summary joins the reasons with " | ", or returns "OK" when there are none
func (v Verdict) Summary() string {
	if len(v.Reasons) == 0 {
		return "OK"
	}
	return strings.Join(v.Reasons, " | ")
}

// FailureVerdict is the verdict recorded for audio that could not be analysed.
// Such audio always counts as suspicious.
func FailureVerdict(err error) Verdict {
	v := Verdict{Reasons: []string{}, Rules: []Rule{}}
	v.add(RuleAnalysisFailed, fmt.Sprintf("Failed to analyze: %v", err))
	return v
}

// Classifier applies Thresholds to signal metrics
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier creates a classifier with the given thresholds
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{Thresholds: t}
}

// Classify evaluates metrics against DefaultThresholds
func Classify(m SignalMetrics, expected *ExpectedDurationRange) Verdict {
	return NewClassifier(DefaultThresholds()).Classify(m, expected)
}

// Classify evaluates every rule independently. Duration rules only apply when
// expected is non-nil, and DurationRatio is left nil otherwise.
func (c *Classifier) Classify(m SignalMetrics, expected *ExpectedDurationRange) Verdict {
	t := c.Thresholds
	v := Verdict{
		Reasons: []string{},
		Rules:   []Rule{},
	}

	if m.SpectralFlatness > t.MaxSpectralFlatness {
		v.add(RuleNoiseSpectrum, fmt.Sprintf("High spectral flatness (%.2f) - noise-like", m.SpectralFlatness))
	}
	if m.ZeroCrossingRate > t.MaxZeroCrossingRate {
		v.add(RuleErraticSignal, fmt.Sprintf("High zero-crossing (%.2f) - erratic signal", m.ZeroCrossingRate))
	}
	if m.RMSEnergy < t.MinRMSEnergy {
		v.add(RuleLowEnergy, fmt.Sprintf("Low energy (%.4f) - silent/corrupted", m.RMSEnergy))
	}

	if expected == nil {
		return v
	}

	ratio := DurationRatio(m.DurationSeconds, *expected)
	v.DurationRatio = &ratio

	switch {
	case ratio > t.MaxDurationRatio:
		v.add(RuleTooLong, fmt.Sprintf("WAY TOO LONG (%.1fx expected) - possible corruption or repetition", ratio))
	case ratio < t.MinDurationRatio:
		v.add(RuleTooShort, fmt.Sprintf("TOO SHORT (%.1fx expected) - truncated or missing content", ratio))
	case ratio > t.ReviewDurationRatio:
		v.add(RuleReviewLength, fmt.Sprintf("Longer than expected (%.1fx) - check quality", ratio))
	}

	return v
}

func (v *Verdict) add(rule Rule, reason string) {
	v.Rules = append(v.Rules, rule)
	v.Reasons = append(v.Reasons, reason)
	if rule.Blocking() {
		v.IsSuspicious = true
	}
}

// DurationRatio measures actual against the nearest bound of expected.
// It is exactly 1.0 inside the band, below 1 when short and above 1 when long.
func DurationRatio(actual float64, expected ExpectedDurationRange) float64 {
	switch {
	case actual < expected.MinSeconds:
		return actual / expected.MinSeconds
	case actual > expected.MaxSeconds:
		return actual / expected.MaxSeconds
	default:
		return 1.0
	}
}
