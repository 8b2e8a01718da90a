package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/spf13/cobra"
)

// Build variables, set at link time with -ldflags "-X"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// buildInfo is the payload of `version --json`
type buildInfo struct {
	Version    string              `json:"version"`
	GitCommit  string              `json:"git_commit"`
	BuildTime  string              `json:"build_time"`
	GoVersion  string              `json:"go_version"`
	Platform   string              `json:"platform"`
	Thresholds analysis.Thresholds `json:"default_thresholds"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:    Version,
		GitCommit:  GitCommit,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Thresholds: analysis.DefaultThresholds(),
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Display the Dialogue QC build and the detector's built-in thresholds.

Profiles and configuration may override the thresholds at run time.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	versionCmd.Flags().Bool("json", false, "print build information as JSON")
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	info := currentBuild()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Fprintf(out, "v%s\n", info.Version)
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	rule := strings.Repeat("-", 40)
	t := info.Thresholds
	fmt.Fprintln(out, "Dialogue QC")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Version:      v%s\n", info.Version)
	fmt.Fprintf(out, "Git Commit:   %s\n", info.GitCommit)
	fmt.Fprintf(out, "Build Time:   %s\n", info.BuildTime)
	fmt.Fprintf(out, "Go Version:   %s\n", info.GoVersion)
	fmt.Fprintf(out, "OS/Arch:      %s\n", info.Platform)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Flatness > %.2f, ZCR > %.2f, RMS < %.3f\n", t.MaxSpectralFlatness, t.MaxZeroCrossingRate, t.MinRMSEnergy)
	fmt.Fprintf(out, "Duration ratio outside [%.1f, %.1f], review above %.1f\n", t.MinDurationRatio, t.MaxDurationRatio, t.ReviewDurationRatio)
	return nil
}
