package cmd

import (
	"fmt"
	"os"

	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/spf13/cobra"
)

// fixturesCmd writes calibration audio
var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Write calibration WAV files",
	Long: `Write synthetic WAV files with known classifications: a clean tone,
white noise and silence. Analyzing the output directory is a quick way to
check a threshold profile.

Example:
  dialogue-qc fixtures --out ./calibration
  dialogue-qc analyze ./calibration --json-out ""`,
	Args: cobra.NoArgs,
	RunE: runFixtures,
}

func init() {
	rootCmd.AddCommand(fixturesCmd)
	fixturesCmd.Flags().String("out", "./fixtures", "output directory")
}

func runFixtures(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	paths, err := audio.WriteFixtures(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fixtures := audio.Fixtures()
	for i, p := range paths {
		fmt.Fprintf(out, "%s  %s\n", p, fixtures[i].Description)
	}
	return nil
}
