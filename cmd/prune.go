package cmd

import (
	"fmt"
	"time"

	"github.com/killallgit/dialogue-qc/internal/services/analyses"
	"github.com/spf13/cobra"
)

// pruneCmd represents the prune command
var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stored runs older than a retention window",
	Long: `Delete finished runs, their analyses, and ad-hoc API analyses that are
older than the given age. Runs still in progress are never removed.

Without --older-than the retention.max_age setting is used.

Example:
  dialogue-qc prune --older-than 720h`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().Duration("older-than", 0, "age beyond which results are deleted (overrides retention.max_age)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cmd, cfg)

	maxAge := cfg.Retention.MaxAge
	if cmd.Flags().Changed("older-than") {
		maxAge, _ = cmd.Flags().GetDuration("older-than")
	}
	if maxAge <= 0 {
		return fmt.Errorf("no retention window: pass --older-than or set retention.max_age")
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	service := analyses.NewService(analyses.NewRepository(db.DB))
	res, err := service.Prune(cmd.Context(), maxAge)
	if err != nil {
		return fmt.Errorf("failed to prune: %w", err)
	}

	log.Debug("prune complete", "max_age", maxAge, "runs", res.Runs, "analyses", res.Analyses)
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d runs and %d analyses older than %s\n", res.Runs, res.Analyses, maxAge.Round(time.Second))
	return nil
}
