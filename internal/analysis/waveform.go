package analysis

import (
	"fmt"
	"math"
)

// Waveform is a decoded mono signal with amplitudes in [-1, 1]
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Validate checks the waveform can be analyzed
func (w Waveform) Validate() error {
	if len(w.Samples) == 0 {
		return fmt.Errorf("%w: waveform has no samples", ErrInvalidInput)
	}
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidInput, w.SampleRate)
	}
	return nil
}

// Duration returns the length of the waveform in seconds
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// MixDown averages interleaved multi-channel frames into a single channel.
// A trailing partial frame is dropped.
func MixDown(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(interleaved))
		copy(out, interleaved)
		return out
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// NormalizeInt scales signed integer samples of the given bit depth into [-1, 1]
// by the format's full-scale magnitude (32768 for 16-bit).
func NormalizeInt(samples []int, bitDepth int) []float64 {
	fullScale := math.Exp2(float64(bitDepth - 1))
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / fullScale
	}
	return out
}

// NormalizeFloat returns floating-point samples in [-1, 1]. Samples already in
// range are copied unchanged; anything else is rescaled to the observed peak.
func NormalizeFloat(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	var peak float64
	for _, s := range out {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if peak <= 1.0 {
		return out
	}
	for i := range out {
		out[i] /= peak
	}
	return out
}
