package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/killallgit/dialogue-qc/internal/services/dialogue"
	"golang.org/x/sync/errgroup"
)

// Runner analyses a set of files with bounded parallelism
type Runner struct {
	opts   Options
	texts  TextResolver
	store  Store
	logger *slog.Logger
}

// NewRunner creates a runner. texts and store are optional.
func NewRunner(opts Options, texts TextResolver, store Store, logger *slog.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{opts: opts, texts: texts, store: store, logger: logger}
}

// Run analyses files and returns their items in input order. A file that
// cannot be decoded is reported as a failed, suspicious item and does not
// stop the batch; cancellation of ctx or a persistence error does.
func (r *Runner) Run(ctx context.Context, files []string) (*Run, []Item, error) {
	run := &Run{
		ScriptID:  r.opts.ScriptID,
		Profile:   r.opts.Profile,
		StartedAt: time.Now().UTC(),
		Persisted: r.store != nil,
	}

	if r.store != nil {
		m, err := r.store.CreateRun(ctx, r.opts.ScriptID, r.opts.Profile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create run: %w", err)
		}
		run.ID = m.UUID
	} else {
		run.ID = uuid.New().String()
	}

	log := r.logger.With("run_id", run.ID)
	log.Info("starting analysis run", "files", len(files), "workers", r.opts.Workers, "profile", r.opts.Profile)

	items := make([]Item, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			item := r.analyzeFile(gctx, path)
			if r.store != nil {
				a := toModel(run.ID, item)
				if err := r.store.Record(gctx, a); err != nil {
					return fmt.Errorf("failed to record %s: %w", item.Source, err)
				}
				item.AnalysisID = a.UUID
			}
			items[i] = item

			log.Debug("analysed file",
				"file", item.Source,
				"suspicious", item.Verdict.IsSuspicious,
				"reason", item.Verdict.Summary())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if r.store != nil {
			// ctx may already be cancelled
			if ferr := r.store.FailRun(context.WithoutCancel(ctx), run.ID); ferr != nil {
				log.Warn("failed to mark run as failed", "error", ferr)
			}
		}
		return nil, nil, err
	}

	run.FinishedAt = time.Now().UTC()
	run.Summary = Summarize(items)

	if r.store != nil {
		if _, err := r.store.CompleteRun(ctx, run.ID, run.Summary); err != nil {
			return nil, nil, fmt.Errorf("failed to complete run: %w", err)
		}
	}

	log.Info("analysis run complete",
		"total", run.Summary.Total,
		"clean", run.Summary.Clean,
		"suspicious", run.Summary.Suspicious,
		"failed", run.Summary.Failed,
		"elapsed", run.FinishedAt.Sub(run.StartedAt))

	return run, items, nil
}

func (r *Runner) analyzeFile(ctx context.Context, path string) Item {
	item := Item{Path: path, Source: filepath.Base(path)}
	if character, index, ok := dialogue.ParseFilename(item.Source); ok {
		item.Character = character
		item.LineIndex = &index
	}
	item.Text = r.resolveText(ctx, item.Source)

	wf, meta, err := audio.DecodeFile(path)
	if err != nil {
		return failed(item, err)
	}
	item.SizeBytes = meta.SizeBytes

	res, err := analysis.Analyze(wf, item.Text, r.opts.Thresholds)
	if err != nil {
		return failed(item, err)
	}
	item.Result = &res
	item.Verdict = res.Verdict
	return item
}

// resolveText returns the reference text for a file, or nil for signal-only analysis
func (r *Runner) resolveText(ctx context.Context, filename string) *string {
	if r.opts.Text != nil {
		if *r.opts.Text == "" {
			return nil
		}
		text := *r.opts.Text
		return &text
	}
	if r.texts == nil || r.opts.ScriptID == "" {
		return nil
	}

	text, err := r.texts.TextFor(ctx, r.opts.ScriptID, filename)
	switch {
	case err == nil && text != "":
		return &text
	case err == nil,
		errors.Is(err, dialogue.ErrLineNotFound),
		errors.Is(err, dialogue.ErrUnrecognisedFilename):
		r.logger.Debug("no reference text, using signal-only analysis", "file", filename)
	default:
		r.logger.Warn("reference text lookup failed", "file", filename, "error", err)
	}
	return nil
}

func failed(item Item, err error) Item {
	item.Failed = true
	item.Error = err.Error()
	item.Verdict = analysis.FailureVerdict(err)
	return item
}
