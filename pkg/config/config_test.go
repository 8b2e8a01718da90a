package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSettings creates ./config/settings.yaml inside a fresh working directory
func writeSettings(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if content == "" {
		return
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "settings.yaml"), []byte(content), 0644))
}

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      map[string]string
		wantErr  bool
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "missing config file uses defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 2, cfg.Processing.Workers)
				assert.Equal(t, []string{".wav"}, cfg.Processing.Extensions)
				assert.Equal(t, "tts.audio.check", cfg.NATS.Subject)
				assert.Equal(t, analysis.DefaultThresholds(), cfg.Thresholds())
				assert.Zero(t, cfg.Retention.MaxAge)
				assert.Equal(t, time.Hour, cfg.Retention.Interval)
			},
		},
		{
			name: "retention window",
			settings: `
retention:
  max_age: 720h
  interval: 15m
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 720*time.Hour, cfg.Retention.MaxAge)
				assert.Equal(t, 15*time.Minute, cfg.Retention.Interval)
			},
		},
		{
			name: "load from settings.yaml",
			settings: `
server:
  host: "127.0.0.1"
  port: 9000
detection:
  min_rms_energy: 0.02
processing:
  workers: 8
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 8, cfg.Processing.Workers)
				assert.InDelta(t, 0.02, cfg.Thresholds().MinRMSEnergy, 1e-12)
				assert.InDelta(t, 0.5, cfg.Thresholds().MaxSpectralFlatness, 1e-12)
			},
		},
		{
			name: "environment variable override",
			settings: `
server:
  port: 8080
`,
			env: map[string]string{
				"DIALOGUEQC_SERVER_PORT":                     "9090",
				"DIALOGUEQC_DETECTION_MAX_SPECTRAL_FLATNESS": "0.6",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.InDelta(t, 0.6, cfg.Thresholds().MaxSpectralFlatness, 1e-12)
			},
		},
		{
			name: "invalid worker count is corrected",
			settings: `
processing:
  workers: 0
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Processing.Workers)
			},
		},
		{
			name: "invalid port",
			settings: `
server:
  port: 70000
`,
			wantErr: true,
		},
		{
			name: "inconsistent thresholds",
			settings: `
detection:
  min_duration_ratio: 1.5
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Reset()
			t.Cleanup(Reset)
			writeSettings(t, tt.settings)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := Init()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			cfg, err := GetConfig()
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		d := analysis.DefaultThresholds()
		return &Config{
			Server: ServerConfig{Host: "localhost", Port: 8080},
			Detection: DetectionConfig{
				MaxSpectralFlatness: d.MaxSpectralFlatness,
				MaxZeroCrossingRate: d.MaxZeroCrossingRate,
				MinRMSEnergy:        d.MinRMSEnergy,
				MaxDurationRatio:    d.MaxDurationRatio,
				MinDurationRatio:    d.MinDurationRatio,
				ReviewDurationRatio: d.ReviewDurationRatio,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config"},
		{name: "invalid port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "empty database path is allowed", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "zero flatness threshold", mutate: func(c *Config) { c.Detection.MaxSpectralFlatness = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			if tt.mutate != nil {
				tt.mutate(c)
			}
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2, c.Processing.Workers)
		})
	}
}

func TestConfig_Validate_PortIsConfigError(t *testing.T) {
	c := &Config{Server: ServerConfig{Port: 70000}}
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigInvalid))
	assert.Contains(t, err.Error(), "invalid server port: 70000")
}
