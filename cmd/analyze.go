package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/killallgit/dialogue-qc/internal/database"
	"github.com/killallgit/dialogue-qc/internal/report"
	"github.com/killallgit/dialogue-qc/internal/services/analyses"
	"github.com/killallgit/dialogue-qc/internal/services/batch"
	"github.com/killallgit/dialogue-qc/internal/services/dialogue"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Analyze rendered dialogue audio for corruption",
	Long: `Analyze WAV files, or every WAV file in the given directories, and
report the ones that look corrupted.

Each file is checked for noise-like spectra, erratic signals and silence.
When reference text is available, either from --text or from a script
imported with 'script import', the duration is compared with the range
expected for the number of words.

A console summary is printed and a detailed JSON report is written. The
command exits 0 even when suspicious files are found.

Example:
  dialogue-qc analyze ./renders/episode-1
  dialogue-qc analyze ./renders/episode-1 --script-id episode-1 --persist
  dialogue-qc analyze take.wav --text "Get down!" --profile kokoro`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("script-id", "", "imported script to resolve dialogue text from")
	analyzeCmd.Flags().String("text", "", "reference text used for every file")
	analyzeCmd.Flags().String("profile", "", "threshold profile (overrides config)")
	analyzeCmd.Flags().Int("workers", 0, "number of parallel workers (overrides config)")
	analyzeCmd.Flags().String("json-out", "", "path of the JSON report (overrides config)")
	analyzeCmd.Flags().Bool("persist", false, "store the run and its analyses in the database")
	analyzeCmd.Flags().Int("top", 0, "number of most suspicious files to list (overrides config)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := setupLogger(cmd, cfg)

	flags := cmd.Flags()
	scriptID, _ := flags.GetString("script-id")
	profile, _ := flags.GetString("profile")
	workers, _ := flags.GetInt("workers")
	jsonOut, _ := flags.GetString("json-out")
	persist, _ := flags.GetBool("persist")
	top, _ := flags.GetInt("top")

	if profile == "" {
		profile = cfg.Detection.DefaultProfile
	}
	if workers <= 0 {
		workers = cfg.Processing.Workers
	}
	if !flags.Changed("json-out") {
		jsonOut = cfg.Processing.ReportPath
	}
	if top <= 0 {
		top = cfg.Processing.TopN
	}

	var text *string
	if flags.Changed("text") {
		t, _ := flags.GetString("text")
		text = &t
	}

	profiles, err := loadProfiles(cfg)
	if err != nil {
		return err
	}
	if _, ok := profiles.Lookup(profile); profile != "" && !ok {
		log.Warn("unknown profile, using base thresholds", "profile", profile, "known", profiles.Names())
	}

	files, err := batch.Collect(args, cfg.Processing.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %v", args)
	}

	var (
		texts batch.TextResolver
		store batch.Store
		db    *database.DB
	)
	if persist || scriptID != "" {
		db, err = openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	if scriptID != "" {
		texts = dialogue.NewService(dialogue.NewRepository(db.DB))
	}
	if persist {
		store = analyses.NewService(analyses.NewRepository(db.DB))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(batch.Options{
		Workers:    workers,
		ScriptID:   scriptID,
		Profile:    profile,
		Thresholds: profiles.Thresholds(profile),
		Text:       text,
	}, texts, store, log)

	run, items, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}

	rep := report.Build(run, items)
	out := cmd.OutOrStdout()
	if err := report.RenderText(out, rep, top); err != nil {
		return err
	}

	if jsonOut != "" {
		if err := report.WriteFile(jsonOut, rep); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nFull results saved to: %s\n", jsonOut)
	}
	if run.Persisted {
		fmt.Fprintf(out, "Run stored as: %s\n", run.ID)
	}

	return nil
}
