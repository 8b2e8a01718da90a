package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 0.5, th.MaxSpectralFlatness)
	assert.Equal(t, 0.3, th.MaxZeroCrossingRate)
	assert.Equal(t, 0.01, th.MinRMSEnergy)
	assert.Equal(t, 3.0, th.MaxDurationRatio)
	assert.Equal(t, 0.3, th.MinDurationRatio)
	assert.Equal(t, 2.0, th.ReviewDurationRatio)
	assert.NoError(t, th.Validate())
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Thresholds)
	}{
		{"zero flatness", func(th *Thresholds) { th.MaxSpectralFlatness = 0 }},
		{"zcr above one", func(th *Thresholds) { th.MaxZeroCrossingRate = 1.5 }},
		{"negative rms", func(th *Thresholds) { th.MinRMSEnergy = -0.1 }},
		{"min ratio of one", func(th *Thresholds) { th.MinDurationRatio = 1 }},
		{"review ratio below one", func(th *Thresholds) { th.ReviewDurationRatio = 0.9 }},
		{"max below review", func(th *Thresholds) { th.MaxDurationRatio = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.modify(&th)
			assert.ErrorIs(t, th.Validate(), ErrInvalidThresholds)
		})
	}
}
