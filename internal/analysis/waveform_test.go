package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaveform_Duration(t *testing.T) {
	assert.Equal(t, 2.0, Waveform{Samples: make([]float64, 88200), SampleRate: 44100}.Duration())
	assert.Equal(t, 0.0, Waveform{Samples: make([]float64, 10)}.Duration())
}

func TestMixDown(t *testing.T) {
	tests := []struct {
		name        string
		interleaved []float64
		channels    int
		want        []float64
	}{
		{"mono passthrough", []float64{0.1, 0.2}, 1, []float64{0.1, 0.2}},
		{"stereo averages frames", []float64{1, 0, 0.5, -0.5, -1, -1}, 2, []float64{0.5, 0, -1}},
		{"partial frame dropped", []float64{1, 1, 0.2}, 2, []float64{1}},
		{"quad", []float64{1, 1, 1, 1}, 4, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MixDown(tt.interleaved, tt.channels))
		})
	}
}

func TestNormalizeInt(t *testing.T) {
	got := NormalizeInt([]int{-32768, 0, 16384, 32767}, 16)
	assert.Equal(t, -1.0, got[0])
	assert.Equal(t, 0.0, got[1])
	assert.Equal(t, 0.5, got[2])
	assert.InDelta(t, 1.0, got[3], 1e-4)

	got = NormalizeInt([]int{-8388608, 4194304}, 24)
	assert.Equal(t, []float64{-1, 0.5}, got)
}

func TestNormalizeFloat(t *testing.T) {
	inRange := []float64{-1, 0.5, 1}
	assert.Equal(t, inRange, NormalizeFloat(inRange))

	assert.Equal(t, []float64{-0.5, 1, 0.25}, NormalizeFloat([]float64{-2, 4, 1}))
}
