package analysis

import (
	"math"
	"math/rand"
)

func sineWave(freq, amplitude float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

func whiteNoise(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = rng.Float64()*2 - 1
	}
	return samples
}

func ptr[T any](v T) *T {
	return &v
}
