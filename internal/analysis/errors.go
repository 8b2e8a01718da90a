package analysis

import "errors"

var (
	// ErrInvalidInput is returned when a waveform has no samples or a non-positive sample rate
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidThresholds is returned when a Thresholds value fails validation
	ErrInvalidThresholds = errors.New("invalid thresholds")
)
