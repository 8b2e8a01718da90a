package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/killallgit/dialogue-qc/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readReport(t *testing.T, path string) report.Report {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	return rep
}

func TestFixturesCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	output, err := execute(t, "fixtures", "--out", "calibration")
	require.NoError(t, err)

	for _, name := range []string{"tone.wav", "noise.wav", "silence.wav"} {
		assert.FileExists(t, filepath.Join("calibration", name))
		assert.Contains(t, output, name)
	}
}

func TestAnalyzeCommand_Fixtures(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "fixtures", "--out", "calibration")
	require.NoError(t, err)

	output, err := execute(t, "analyze", "calibration", "--json-out", "report.json", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "Total files: 3")
	assert.Contains(t, output, "Clean files: 1")
	assert.Contains(t, output, "Suspicious files: 2")
	assert.Contains(t, output, "SUSPICIOUS FILES (2):")
	assert.Contains(t, output, "Full results saved to: report.json")
	assert.NotContains(t, output, "Run stored as:")

	rep := readReport(t, "report.json")
	assert.Equal(t, 3, rep.Summary.Total)
	assert.Equal(t, 2, rep.Summary.Suspicious)
	require.Len(t, rep.AllResults, 3)
	for _, e := range rep.AllResults {
		assert.Nil(t, e.DurationRatio, e.File)
	}
}

func TestAnalyzeCommand_TextAndPersist(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, audio.WriteFile("take.wav", audio.Tone(220, 0.5, 1.0, 16000), 16000))

	long := "this sentence has far too many words to fit inside a one second take of audio"
	output, err := execute(t, "analyze", "take.wav", "--text", long, "--persist", "--json-out", "take.json", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, output, "Suspicious files: 1")
	assert.Contains(t, output, "TOP 1 MOST SUSPICIOUS (by duration ratio):")
	assert.Contains(t, output, "Run stored as:")
	assert.FileExists(t, filepath.Join("data", "dialogue-qc.db"))

	rep := readReport(t, "take.json")
	require.Len(t, rep.SuspiciousFiles, 1)
	assert.Contains(t, rep.SuspiciousFiles[0].Rules, analysis.RuleTooShort)
	assert.NotEmpty(t, rep.SuspiciousFiles[0].AnalysisID)
	require.NotNil(t, rep.SuspiciousFiles[0].DialogueText)
	assert.Equal(t, long[:50]+"...", *rep.SuspiciousFiles[0].DialogueText)
}

func TestAnalyzeCommand_ScriptText(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, os.Mkdir("renders", 0755))
	tone := audio.Tone(220, 0.5, 1.5, 16000)
	require.NoError(t, audio.WriteFile(filepath.Join("renders", "hero-line-1.wav"), tone, 16000))
	require.NoError(t, audio.WriteFile(filepath.Join("renders", "villain-line-2.wav"), tone, 16000))

	script := `{"content":[
		{"type":"dialogue","character":"Hero","text":"Run!"},
		{"type":"action","text":"The tower shakes."},
		{"type":"dialogue","character":"Villain","text":"You will never leave this tower alive because every door is sealed and every guard is mine"}
	]}`
	require.NoError(t, os.WriteFile("episode.json", []byte(script), 0644))

	output, err := execute(t, "script", "import", "episode-1", "episode.json", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "Imported 2 dialogue lines")

	output, err = execute(t, "script", "lines", "episode-1", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "HERO")
	assert.Contains(t, output, "VILLAIN")

	output, err = execute(t, "analyze", "renders", "--script-id", "episode-1", "--json-out", "episode.report.json", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "Suspicious files: 1")

	rep := readReport(t, "episode.report.json")
	assert.Equal(t, "episode-1", rep.ScriptID)
	require.Len(t, rep.AllResults, 2)

	hero, villain := rep.AllResults[0], rep.AllResults[1]
	assert.Equal(t, "hero-line-1.wav", hero.File)
	assert.False(t, hero.IsSuspicious)
	require.NotNil(t, hero.WordCount)
	assert.Equal(t, 1, *hero.WordCount)

	assert.Equal(t, "villain-line-2.wav", villain.File)
	assert.True(t, villain.IsSuspicious)
	assert.Contains(t, villain.Rules, analysis.RuleTooShort)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "analyze")
	assert.Error(t, err)

	require.NoError(t, os.Mkdir("empty", 0755))
	_, err = execute(t, "analyze", "empty", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio files found")
}

func TestScriptImport_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "script", "import", "episode-1", "missing.json")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile("bad.json", []byte("{"), 0644))
	_, err = execute(t, "script", "import", "episode-1", "bad.json", "--log-level", "error")
	assert.Error(t, err)
}

func TestMigrateCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	output, err := execute(t, "migrate", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "Migrated ./data/dialogue-qc.db")
	for _, table := range []string{"runs", "analyses", "dialogue_lines"} {
		assert.Contains(t, output, table)
	}
	assert.FileExists(t, filepath.Join("data", "dialogue-qc.db"))
}

func TestPruneCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "prune", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no retention window")

	_, err = execute(t, "fixtures", "--out", "calibration")
	require.NoError(t, err)
	_, err = execute(t, "analyze", "calibration", "--persist", "--log-level", "error")
	require.NoError(t, err)

	output, err := execute(t, "prune", "--older-than", "1h", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, output, "Pruned 0 runs and 0 analyses older than 1h0m0s")
}
