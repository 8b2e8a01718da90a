package cmd

import (
	"fmt"

	"github.com/killallgit/dialogue-qc/internal/models"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Create or update the database schema for runs, analyses and
dialogue lines.

The database path is taken from database.path in the configuration.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cmd, cfg)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migrated %s\n", displayPath(cfg.Database.Path))
	for _, table := range []string{models.Run{}.TableName(), models.Analysis{}.TableName(), models.DialogueLine{}.TableName()} {
		fmt.Fprintf(out, "  • %s\n", table)
	}
	log.Debug("migration complete", "path", cfg.Database.Path)
	return nil
}

func displayPath(path string) string {
	if path == "" || path == ":memory:" {
		return "in-memory database"
	}
	return path
}
