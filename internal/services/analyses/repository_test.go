package analyses

import (
	"context"
	"testing"
	"time"

	"github.com/killallgit/dialogue-qc/internal/database"
	"github.com/killallgit/dialogue-qc/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return NewService(NewRepository(db.DB))
}

func TestRepository_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	run, err := service.CreateRun(ctx, "script-1", "")
	require.NoError(t, err)
	require.Len(t, run.UUID, 36)

	for i, suspicious := range []bool{false, true, true} {
		a := &models.Analysis{
			RunID:        run.UUID,
			Source:       []string{"a.wav", "b.wav", "c.wav"}[i],
			IsSuspicious: suspicious,
		}
		require.NoError(t, service.Record(ctx, a))
	}
	// analysis belonging to no run
	require.NoError(t, service.Record(ctx, &models.Analysis{Source: "adhoc.wav"}))

	all, err := service.ListByRun(ctx, run.UUID, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a.wav", all[0].Source)
	assert.Equal(t, "c.wav", all[2].Source)

	suspicious, err := service.ListByRun(ctx, run.UUID, true)
	require.NoError(t, err)
	require.Len(t, suspicious, 2)
	assert.Equal(t, "b.wav", suspicious[0].Source)

	done, err := service.CompleteRun(ctx, run.UUID, Summary{Total: 3, Clean: 1, Suspicious: 2})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, done.Status)

	reloaded, err := service.GetRun(ctx, run.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, reloaded.Status)
	assert.Equal(t, 2, reloaded.Suspicious)
	require.NotNil(t, reloaded.CompletedAt)

	got, err := service.Get(ctx, all[1].UUID)
	require.NoError(t, err)
	assert.Equal(t, "b.wav", got.Source)
	assert.Equal(t, run.UUID, got.RunID)
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_, err := service.GetRun(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = service.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrAnalysisNotFound)

	_, err = service.Get(ctx, "")
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	repo := NewRepository(db.DB)
	service := NewService(repo)
	old := time.Now().UTC().Add(-48 * time.Hour)

	backdate := func(model any, uuid string) {
		require.NoError(t, db.DB.Model(model).Where("uuid = ?", uuid).UpdateColumn("created_at", old).Error)
	}

	expired, err := service.CreateRun(ctx, "s1", "")
	require.NoError(t, err)
	_, err = service.CompleteRun(ctx, expired.UUID, Summary{Total: 1})
	require.NoError(t, err)
	backdate(&models.Run{}, expired.UUID)

	running, err := service.CreateRun(ctx, "s2", "")
	require.NoError(t, err)
	backdate(&models.Run{}, running.UUID)

	fresh, err := service.CreateRun(ctx, "s3", "")
	require.NoError(t, err)

	records := []*models.Analysis{
		{RunID: expired.UUID, Source: "expired.wav"},
		{RunID: running.UUID, Source: "running.wav"},
		{RunID: fresh.UUID, Source: "fresh.wav"},
		{Source: "adhoc-old.wav"},
		{Source: "adhoc-new.wav"},
	}
	for _, a := range records {
		require.NoError(t, service.Record(ctx, a))
	}
	backdate(&models.Analysis{}, records[1].UUID)
	backdate(&models.Analysis{}, records[3].UUID)

	res, err := repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Runs)
	assert.Equal(t, int64(2), res.Analyses)

	_, err = service.GetRun(ctx, expired.UUID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = service.GetRun(ctx, running.UUID)
	assert.NoError(t, err)

	for i, want := range []bool{false, true, true, false, true} {
		_, err := service.Get(ctx, records[i].UUID)
		if want {
			assert.NoError(t, err, records[i].Source)
		} else {
			assert.ErrorIs(t, err, ErrAnalysisNotFound, records[i].Source)
		}
	}

	// nothing left to prune
	res, err = repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, PruneResult{}, res)
}
