package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/killallgit/dialogue-qc/internal/database"
	"github.com/killallgit/dialogue-qc/internal/logging"
	"github.com/killallgit/dialogue-qc/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dialogue-qc",
	Short: "Audio corruption detection for synthesized dialogue",
	Long: `Dialogue QC - corruption screening for text-to-speech dialogue renders

Flags rendered lines that are noise, silence, erratic or the wrong length
for their text, so they can be re-generated before they ship.

Features:
  • Batch analysis of WAV directories with console and JSON reports
  • Duration checks against dialogue text imported from a parsed script
  • Threshold profiles per voice or engine
  • HTTP API for single-file checks and stored run lookups
  • NATS request/reply worker reading audio from a JetStream object store`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return config.GetConfig()
}

// setupLogger builds the process logger from flags, falling back to the
// logging section of cfg, and installs it as the slog default
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format := "text"
	if cfg != nil {
		if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
			level = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			format = cfg.Logging.Format
		}
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		format = "json"
	}

	log := logging.NewWithWriter(cmd.ErrOrStderr(), level, format)
	slog.SetDefault(log)
	return log
}

// openDatabase connects to the configured database and migrates the schema
func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// loadProfiles reads the threshold profiles file over the configured base thresholds
func loadProfiles(cfg *config.Config) (*config.Profiles, error) {
	profiles, err := config.LoadProfiles(cfg.Detection.ProfilesPath, cfg.Thresholds())
	if err != nil {
		return nil, fmt.Errorf("failed to load threshold profiles: %w", err)
	}
	return profiles, nil
}
