package analysis

// Result bundles everything computed for one waveform
type Result struct {
	Metrics   SignalMetrics          `json:"metrics"`
	WordCount *int                   `json:"word_count,omitempty"`
	Expected  *ExpectedDurationRange `json:"expected,omitempty"`
	Verdict   Verdict                `json:"verdict"`
}

// Analyze runs Extract, Estimate (when text is non-nil) and Classify in order.
// It is a pure composition and fails only with ErrInvalidInput.
func Analyze(w Waveform, text *string, t Thresholds) (Result, error) {
	metrics, err := Extract(w)
	if err != nil {
		return Result{}, err
	}

	res := Result{Metrics: metrics}
	if text != nil {
		words := WordCount(*text)
		expected := Estimate(*text)
		res.WordCount = &words
		res.Expected = &expected
	}

	res.Verdict = NewClassifier(t).Classify(metrics, res.Expected)
	return res, nil
}
