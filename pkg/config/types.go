package config

import (
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
)

// Config represents the complete application configuration
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Processing  ProcessingConfig `mapstructure:"processing"`
	Detection   DetectionConfig  `mapstructure:"detection"`
	NATS        NATSConfig       `mapstructure:"nats"`
	Retention   RetentionConfig  `mapstructure:"retention"`
	Security    SecurityConfig   `mapstructure:"security"`
	Logging     LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	RateLimit       float64       `mapstructure:"rate_limit"` // requests per second per client
	RateBurst       int           `mapstructure:"rate_burst"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// ProcessingConfig contains batch analysis settings
type ProcessingConfig struct {
	Workers    int      `mapstructure:"workers"`
	Extensions []string `mapstructure:"extensions"`
	ReportPath string   `mapstructure:"report_path"`
	TopN       int      `mapstructure:"top_n"`
}

// DetectionConfig contains the classifier thresholds and the profile file location
type DetectionConfig struct {
	MaxSpectralFlatness float64 `mapstructure:"max_spectral_flatness"`
	MaxZeroCrossingRate float64 `mapstructure:"max_zero_crossing_rate"`
	MinRMSEnergy        float64 `mapstructure:"min_rms_energy"`
	MaxDurationRatio    float64 `mapstructure:"max_duration_ratio"`
	MinDurationRatio    float64 `mapstructure:"min_duration_ratio"`
	ReviewDurationRatio float64 `mapstructure:"review_duration_ratio"`
	ProfilesPath        string  `mapstructure:"profiles_path"`
	DefaultProfile      string  `mapstructure:"default_profile"`
}

// NATSConfig contains the message-bus worker settings
type NATSConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Subject string        `mapstructure:"subject"`
	Queue   string        `mapstructure:"queue"`
	Bucket  string        `mapstructure:"bucket"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RetentionConfig controls pruning of stored runs; a zero MaxAge keeps everything
type RetentionConfig struct {
	MaxAge   time.Duration `mapstructure:"max_age"`
	Interval time.Duration `mapstructure:"interval"`
}

// SecurityConfig contains CORS settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Thresholds converts the detection section into classifier thresholds
func (c *Config) Thresholds() analysis.Thresholds {
	d := c.Detection
	return analysis.Thresholds{
		MaxSpectralFlatness: d.MaxSpectralFlatness,
		MaxZeroCrossingRate: d.MaxZeroCrossingRate,
		MinRMSEnergy:        d.MinRMSEnergy,
		MaxDurationRatio:    d.MaxDurationRatio,
		MinDurationRatio:    d.MinDurationRatio,
		ReviewDurationRatio: d.ReviewDurationRatio,
	}
}
