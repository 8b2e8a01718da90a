package natsqc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/killallgit/dialogue-qc/internal/audio"
	"github.com/killallgit/dialogue-qc/internal/models"
	apperrors "github.com/killallgit/dialogue-qc/pkg/errors"
	"github.com/nats-io/nats.go"
)

const defaultHandleTimeout = 30 * time.Second

// ErrMissingAudioKey is returned for requests without an audio key
var ErrMissingAudioKey = errors.New("audio_key is required")

// ThresholdSource resolves classifier thresholds by profile name
type ThresholdSource interface {
	Thresholds(profile string) analysis.Thresholds
}

// Recorder persists analyses
type Recorder interface {
	Record(ctx context.Context, a *models.Analysis) error
}

// Config holds the worker's subscription settings
type Config struct {
	Subject string
	Queue   string
	// Timeout bounds the object download and recording. Decoding and analysis
	// run to completion; a request that overran is answered with an error only.
	Timeout time.Duration
}

// Worker answers audio check requests
type Worker struct {
	conn       *nats.Conn
	cfg        Config
	store      Store
	thresholds ThresholdSource
	recorder   Recorder
	log        *slog.Logger
}

// NewWorker creates a worker. recorder may be nil.
func NewWorker(conn *nats.Conn, cfg Config, store Store, thresholds ThresholdSource, recorder Recorder, log *slog.Logger) *Worker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHandleTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Worker{
		conn:       conn,
		cfg:        cfg,
		store:      store,
		thresholds: thresholds,
		recorder:   recorder,
		log:        log.With("subject", cfg.Subject),
	}
}

// Run subscribes and serves requests until ctx is cancelled, then drains
func (w *Worker) Run(ctx context.Context) error {
	var (
		sub *nats.Subscription
		err error
	)
	if w.cfg.Queue != "" {
		sub, err = w.conn.QueueSubscribe(w.cfg.Subject, w.cfg.Queue, w.handleMessage)
	} else {
		sub, err = w.conn.Subscribe(w.cfg.Subject, w.handleMessage)
	}
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.cfg.Subject, err)
	}
	w.log.Info("audio check worker listening", "queue", w.cfg.Queue)

	<-ctx.Done()

	if err := sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain subscription: %w", err)
	}
	w.log.Info("audio check worker stopped")
	return nil
}

func (w *Worker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Timeout)
	defer cancel()

	resp := w.Handle(ctx, msg.Data)

	data, err := json.Marshal(resp)
	if err != nil {
		w.log.Error("failed to marshal reply", "error", err)
		return
	}
	if msg.Reply == "" {
		w.log.Warn("audio check request without reply subject", "audio_key", resp.AudioKey)
		return
	}
	if err := msg.Respond(data); err != nil {
		w.log.Error("failed to publish reply", "audio_key", resp.AudioKey, "error", err)
	}
}

// Handle processes one encoded Request and builds its Response
func (w *Worker) Handle(ctx context.Context, data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: fmt.Sprintf("invalid request: %v", err)}
	}
	if req.AudioKey == "" {
		return Response{Error: ErrMissingAudioKey.Error()}
	}

	resp := Response{AudioKey: req.AudioKey}
	log := w.log.With("audio_key", req.AudioKey, "profile", req.Profile)

	raw, err := w.store.Download(ctx, req.AudioKey)
	if err != nil {
		log.Warn("audio download failed", "error", err)
		resp.Error = err.Error()
		if appErr, ok := apperrors.As(err); ok {
			resp.Code = appErr.Code
		}
		return resp
	}

	record := &models.Analysis{Source: req.AudioKey, SizeBytes: int64(len(raw))}
	text := req.Text
	if text != nil && *text == "" {
		text = nil
	}

	wf, _, err := audio.DecodeBytes(raw)
	if err == nil {
		var res analysis.Result
		res, err = analysis.Analyze(wf, text, w.thresholds.Thresholds(req.Profile))
		if err == nil {
			resp.Metrics = &res.Metrics
			resp.Expected = res.Expected
			resp.Verdict = &res.Verdict
			record.ApplyResult(text, res)
		}
	}
	if err != nil {
		v := analysis.FailureVerdict(err)
		resp.Verdict = &v
		resp.Error = err.Error()
		resp.Code = audio.FailureError(req.AudioKey, err).Code
		record.Text = text
		record.ApplyFailure(v, err)
	}

	// deadline passed during analysis
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Warn("audio check exceeded its deadline", "error", ctxErr)
		return Response{
			AudioKey: req.AudioKey,
			Error:    fmt.Sprintf("audio check abandoned: %v", ctxErr),
		}
	}

	if w.recorder != nil {
		if rerr := w.recorder.Record(ctx, record); rerr != nil {
			log.Warn("failed to record analysis", "error", rerr)
		} else {
			resp.AnalysisID = record.UUID
		}
	}

	log.Info("audio checked", "suspicious", resp.Verdict.IsSuspicious, "reason", resp.Verdict.Summary())
	return resp
}
