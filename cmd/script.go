package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/killallgit/dialogue-qc/internal/services/dialogue"
	"github.com/spf13/cobra"
)

// scriptCmd groups dialogue script management
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Manage dialogue scripts used as reference text",
}

// scriptImportCmd loads the dialogue lines of a parsed script
var scriptImportCmd = &cobra.Command{
	Use:   "import <script-id> <parsed.json>",
	Short: "Import dialogue lines from a parsed script",
	Long: `Import the dialogue items of a parsed script document.

Dialogue items are numbered from 1 in document order, so that the file
hero-line-3.wav resolves to the third dialogue line of the script.
Importing a script again replaces its lines.

Example:
  dialogue-qc script import episode-1 ./scripts/episode-1.parsed.json`,
	Args: cobra.ExactArgs(2),
	RunE: runScriptImport,
}

// scriptLinesCmd lists the imported lines of a script
var scriptLinesCmd = &cobra.Command{
	Use:   "lines <script-id>",
	Short: "List the imported dialogue lines of a script",
	Args:  cobra.ExactArgs(1),
	RunE:  runScriptLines,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptImportCmd)
	scriptCmd.AddCommand(scriptLinesCmd)
}

func newDialogueService(cmd *cobra.Command) (dialogue.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cmd, cfg)

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return dialogue.NewService(dialogue.NewRepository(db.DB)), func() { db.Close() }, nil
}

func runScriptImport(cmd *cobra.Command, args []string) error {
	scriptID, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	svc, closeDB, err := newDialogueService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := svc.ImportScript(cmd.Context(), scriptID, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d dialogue lines into script %q\n", n, scriptID)
	return nil
}

func runScriptLines(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := newDialogueService(cmd)
	if err != nil {
		return err
	}
	defer closeDB()

	lines, err := svc.Lines(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No dialogue lines for script %q\n", args[0])
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHARACTER\tLINE\tTEXT")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", l.Character, l.LineIndex, l.Text)
	}
	return tw.Flush()
}
