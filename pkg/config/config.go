package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment overrides, e.g. DIALOGUEQC_DETECTION_MIN_RMS_ENERGY
		viper.SetEnvPrefix("DIALOGUEQC")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file means defaults and env vars only
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Reset clears viper state and allows Init to run again (for tests)
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", port))
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	thresholds := analysis.Thresholds{
		MaxSpectralFlatness: viper.GetFloat64("detection.max_spectral_flatness"),
		MaxZeroCrossingRate: viper.GetFloat64("detection.max_zero_crossing_rate"),
		MinRMSEnergy:        viper.GetFloat64("detection.min_rms_energy"),
		MaxDurationRatio:    viper.GetFloat64("detection.max_duration_ratio"),
		MinDurationRatio:    viper.GetFloat64("detection.min_duration_ratio"),
		ReviewDurationRatio: viper.GetFloat64("detection.review_duration_ratio"),
	}
	return thresholds.Validate()
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 2
	}

	return c.Thresholds().Validate()
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", 50<<20)
	viper.SetDefault("server.rate_limit", 5.0)
	viper.SetDefault("server.rate_burst", 10)

	// Database defaults
	viper.SetDefault("database.path", "./data/dialogue-qc.db")
	viper.SetDefault("database.verbose", false)

	// Processing defaults
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.extensions", []string{".wav"})
	viper.SetDefault("processing.report_path", "audio_analysis_report.json")
	viper.SetDefault("processing.top_n", 10)

	// Detection defaults mirror analysis.DefaultThresholds
	d := analysis.DefaultThresholds()
	viper.SetDefault("detection.max_spectral_flatness", d.MaxSpectralFlatness)
	viper.SetDefault("detection.max_zero_crossing_rate", d.MaxZeroCrossingRate)
	viper.SetDefault("detection.min_rms_energy", d.MinRMSEnergy)
	viper.SetDefault("detection.max_duration_ratio", d.MaxDurationRatio)
	viper.SetDefault("detection.min_duration_ratio", d.MinDurationRatio)
	viper.SetDefault("detection.review_duration_ratio", d.ReviewDurationRatio)
	viper.SetDefault("detection.profiles_path", "./config/profiles.toml")
	viper.SetDefault("detection.default_profile", "")

	// NATS defaults
	viper.SetDefault("nats.enabled", false)
	viper.SetDefault("nats.url", "nats://127.0.0.1:4222")
	viper.SetDefault("nats.subject", "tts.audio.check")
	viper.SetDefault("nats.queue", "dialogue-qc")
	viper.SetDefault("nats.bucket", "tts-audio")
	viper.SetDefault("nats.timeout", 10*time.Second)

	// Retention defaults
	viper.SetDefault("retention.max_age", time.Duration(0))
	viper.SetDefault("retention.interval", time.Hour)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}
