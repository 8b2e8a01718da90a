package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 80

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	file    lipgloss.Style
	key     lipgloss.Style
	warn    lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	re := lipgloss.NewRenderer(w)
	return styles{
		title:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("#A40000")),
		heading: re.NewStyle().Bold(true),
		file:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
		key:     re.NewStyle().Foreground(lipgloss.Color("#888888")),
		warn:    re.NewStyle().Foreground(lipgloss.Color("#D7AF00")),
		ok:      re.NewStyle().Foreground(lipgloss.Color("#5FAF5F")),
	}
}

// RenderText prints the console report: summary, every suspicious file, and
// the top most abnormal files by duration ratio.
func RenderText(w io.Writer, r *Report, top int) error {
	st := newStyles(w)
	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	fmt.Fprintln(&b, st.title.Render("Audio Corruption Analysis"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%s %s\n", st.key.Render("Run:"), r.RunID)
	if r.ScriptID != "" {
		fmt.Fprintf(&b, "%s %s\n", st.key.Render("Script:"), r.ScriptID)
	}
	if r.Profile != "" {
		fmt.Fprintf(&b, "%s %s\n", st.key.Render("Profile:"), r.Profile)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, st.heading.Render("SUMMARY"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Total files: %d\n", r.Summary.Total)
	fmt.Fprintf(&b, "Clean files: %s\n", st.ok.Render(fmt.Sprint(r.Summary.Clean)))
	fmt.Fprintf(&b, "Suspicious files: %s\n", st.warn.Render(fmt.Sprint(r.Summary.Suspicious)))
	if r.Summary.Failed > 0 {
		fmt.Fprintf(&b, "Failed files: %d\n", r.Summary.Failed)
	}

	if len(r.SuspiciousFiles) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, st.heading.Render(fmt.Sprintf("SUSPICIOUS FILES (%d):", len(r.SuspiciousFiles))))
	fmt.Fprintln(&b, rule)
	for _, e := range r.SuspiciousFiles {
		writeEntry(&b, st, e)
	}

	if top > 0 {
		n := min(top, len(r.SuspiciousFiles))
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, st.heading.Render(fmt.Sprintf("TOP %d MOST SUSPICIOUS (by duration ratio):", n)))
		fmt.Fprintln(&b, rule)
		for i, e := range r.SuspiciousFiles[:n] {
			fmt.Fprintf(&b, "%d. %s - %s expected - %s\n", i+1, e.File, formatRatio(e.DurationRatio), e.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEntry(b *strings.Builder, st styles, e Entry) {
	fmt.Fprintln(b)
	fmt.Fprintln(b, st.file.Render(e.File))
	if e.DialogueText != nil && *e.DialogueText != "" {
		fmt.Fprintf(b, "  Text: %q\n", *e.DialogueText)
		if e.WordCount != nil {
			fmt.Fprintf(b, "  Words: %d\n", *e.WordCount)
		}
	}
	if e.ActualDuration != nil {
		fmt.Fprintf(b, "  Actual duration: %.2fs\n", *e.ActualDuration)
	}
	if e.ExpectedMin != nil && e.ExpectedMax != nil {
		fmt.Fprintf(b, "  Expected: %.2f-%.2fs\n", *e.ExpectedMin, *e.ExpectedMax)
	}
	if e.DurationRatio != nil {
		fmt.Fprintf(b, "  Ratio: %.2fx expected\n", *e.DurationRatio)
	}
	fmt.Fprintf(b, "  Size: %.2f MB\n", e.FileSizeMB)
	fmt.Fprintf(b, "  %s %s\n", st.warn.Render("!"), e.Reason)
}

func formatRatio(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2fx", *r)
}
