package analysis

import "fmt"

// Thresholds holds the tunable limits used by the Classifier.
// Callers tune sensitivity per voice or engine by supplying their own values.
type Thresholds struct {
	// MaxSpectralFlatness above which the spectrum is considered noise-like
	MaxSpectralFlatness float64 `json:"max_spectral_flatness" toml:"max_spectral_flatness" mapstructure:"max_spectral_flatness"`
	// MaxZeroCrossingRate above which the signal is considered erratic
	MaxZeroCrossingRate float64 `json:"max_zero_crossing_rate" toml:"max_zero_crossing_rate" mapstructure:"max_zero_crossing_rate"`
	// MinRMSEnergy below which the render is considered silent
	MinRMSEnergy float64 `json:"min_rms_energy" toml:"min_rms_energy" mapstructure:"min_rms_energy"`
	// MaxDurationRatio above which the clip is too long (repetition, runaway generation)
	MaxDurationRatio float64 `json:"max_duration_ratio" toml:"max_duration_ratio" mapstructure:"max_duration_ratio"`
	// MinDurationRatio below which the clip is too short (truncation)
	MinDurationRatio float64 `json:"min_duration_ratio" toml:"min_duration_ratio" mapstructure:"min_duration_ratio"`
	// ReviewDurationRatio above which a non-blocking review reason is added
	ReviewDurationRatio float64 `json:"review_duration_ratio" toml:"review_duration_ratio" mapstructure:"review_duration_ratio"`
}

// DefaultThresholds returns the calibrated defaults
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxSpectralFlatness: 0.5,
		MaxZeroCrossingRate: 0.3,
		MinRMSEnergy:        0.01,
		MaxDurationRatio:    3.0,
		MinDurationRatio:    0.3,
		ReviewDurationRatio: 2.0,
	}
}

// Validate checks the thresholds are internally consistent
func (t Thresholds) Validate() error {
	if t.MaxSpectralFlatness <= 0 {
		return fmt.Errorf("%w: max_spectral_flatness must be positive", ErrInvalidThresholds)
	}
	if t.MaxZeroCrossingRate <= 0 || t.MaxZeroCrossingRate > 1 {
		return fmt.Errorf("%w: max_zero_crossing_rate must be in (0, 1]", ErrInvalidThresholds)
	}
	if t.MinRMSEnergy < 0 {
		return fmt.Errorf("%w: min_rms_energy must be non-negative", ErrInvalidThresholds)
	}
	if t.MinDurationRatio <= 0 || t.MinDurationRatio >= 1 {
		return fmt.Errorf("%w: min_duration_ratio must be in (0, 1)", ErrInvalidThresholds)
	}
	if t.ReviewDurationRatio <= 1 {
		return fmt.Errorf("%w: review_duration_ratio must be greater than 1", ErrInvalidThresholds)
	}
	if t.MaxDurationRatio < t.ReviewDurationRatio {
		return fmt.Errorf("%w: max_duration_ratio must not be below review_duration_ratio", ErrInvalidThresholds)
	}
	return nil
}
