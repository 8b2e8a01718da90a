package models

import (
	"errors"
	"testing"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList{"a", "b|c"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b|c"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var l StringList
	require.NoError(t, l.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, l)
	require.NoError(t, l.Scan(`["y","z"]`))
	assert.Equal(t, StringList{"y", "z"}, l)
	require.NoError(t, l.Scan(nil))
	assert.Empty(t, l)
	assert.Error(t, l.Scan(42))
}

func TestRun_BeforeCreate(t *testing.T) {
	db := openTestDB(t)

	run := &Run{ScriptID: "script-1"}
	require.NoError(t, db.Create(run).Error)

	assert.Len(t, run.UUID, 36)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.False(t, run.IsTerminal())

	run.Status = RunStatusCompleted
	assert.True(t, run.IsTerminal())
}

func TestAnalysis_ApplyResultPersists(t *testing.T) {
	db := openTestDB(t)

	ratio := 3.4
	words := 4
	text := "one two three four"
	res := analysis.Result{
		Metrics: analysis.SignalMetrics{
			DurationSeconds:  9.0,
			RMSEnergy:        0.2,
			ZeroCrossingRate: 0.05,
			SpectralFlatness: 0.1,
		},
		WordCount: &words,
		Expected:  &analysis.ExpectedDurationRange{MinSeconds: 4.0 / 3.0, MaxSeconds: 4.0 / 1.5},
		Verdict: analysis.Verdict{
			IsSuspicious:  true,
			Reasons:       []string{"WAY TOO LONG (3.4x expected) - possible corruption or repetition"},
			Rules:         []analysis.Rule{analysis.RuleTooLong},
			DurationRatio: &ratio,
		},
	}

	a := &Analysis{Source: "HERO-line-3.wav"}
	a.ApplyResult(&text, res)
	require.NoError(t, db.Create(a).Error)
	assert.Len(t, a.UUID, 36)

	var got Analysis
	require.NoError(t, db.First(&got, "uuid = ?", a.UUID).Error)

	assert.Equal(t, AnalysisStatusAnalyzed, got.Status)
	assert.False(t, got.IsFailed())
	assert.True(t, got.IsSuspicious)
	assert.Equal(t, StringList{"too_long"}, got.Rules)
	assert.Equal(t, res.Verdict.Reasons, []string(got.Reasons))
	require.NotNil(t, got.DurationRatio)
	assert.InDelta(t, 3.4, *got.DurationRatio, 1e-12)
	require.NotNil(t, got.ExpectedMax)
	assert.InDelta(t, 4.0/1.5, *got.ExpectedMax, 1e-12)
	require.NotNil(t, got.Text)
	assert.Equal(t, text, *got.Text)
	assert.InDelta(t, 9.0, got.DurationSeconds, 1e-12)
}

func TestAnalysis_ApplyFailure(t *testing.T) {
	a := &Analysis{Source: "broken.wav"}
	v := analysis.Verdict{IsSuspicious: true, Reasons: []string{"Failed to analyze: bad header"}, Rules: []analysis.Rule{}}

	a.ApplyFailure(v, errors.New("bad header"))

	assert.True(t, a.IsFailed())
	assert.True(t, a.IsSuspicious)
	assert.Equal(t, "bad header", a.ErrorMessage)
	assert.Empty(t, a.Rules)
	assert.Nil(t, a.DurationRatio)
}

func TestDialogueLine_UniquePerScriptLine(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&DialogueLine{ScriptID: "s", Character: "HERO", LineIndex: 1, Text: "hi"}).Error)
	require.NoError(t, db.Create(&DialogueLine{ScriptID: "other", Character: "HERO", LineIndex: 1, Text: "hi"}).Error)
	assert.Error(t, db.Create(&DialogueLine{ScriptID: "s", Character: "HERO", LineIndex: 1, Text: "dup"}).Error)
}
