package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
)

// FixtureSampleRate is the rate calibration fixtures are rendered at
const FixtureSampleRate = 24000

// Fixture is a synthetic calibration signal with a known classification
type Fixture struct {
	Name        string
	Description string
	Samples     []float64
}

// Tone renders a sine wave
func Tone(freq, amplitude, seconds float64, sampleRate int) []float64 {
	out := make([]float64, int(seconds*float64(sampleRate)))
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// Noise renders uniform white noise in [-amplitude, amplitude]
func Noise(amplitude, seconds float64, sampleRate int, seed uint64) []float64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float64, int(seconds*float64(sampleRate)))
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Silence renders digital silence
func Silence(seconds float64, sampleRate int) []float64 {
	return make([]float64, int(seconds*float64(sampleRate)))
}

// Fixtures returns the calibration set: a clean tone, white noise and silence
func Fixtures() []Fixture {
	return []Fixture{
		{Name: "tone.wav", Description: "220 Hz sine, classifies clean", Samples: Tone(220, 0.5, 1.5, FixtureSampleRate)},
		{Name: "noise.wav", Description: "white noise, trips the noise and zero-crossing rules", Samples: Noise(0.5, 1.5, FixtureSampleRate, 1)},
		{Name: "silence.wav", Description: "digital silence, trips the energy rule", Samples: Silence(1.5, FixtureSampleRate)},
	}
}

// WriteFixtures writes every calibration fixture into dir and returns the paths
func WriteFixtures(dir string) ([]string, error) {
	fixtures := Fixtures()
	paths := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		path := filepath.Join(dir, f.Name)
		if err := WriteFile(path, f.Samples, FixtureSampleRate); err != nil {
			return nil, fmt.Errorf("failed to write fixture %s: %w", f.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
