package cleanup

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/killallgit/dialogue-qc/internal/services/analyses"
)

// Pruner removes stored results older than a given age
type Pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (analyses.PruneResult, error)
}

// Service periodically prunes expired runs and analyses
type Service struct {
	pruner          Pruner
	maxAge          time.Duration
	cleanupInterval time.Duration
	log             *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new retention service
func NewService(pruner Pruner, maxAge, cleanupInterval time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	return &Service{
		pruner:          pruner,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
		log:             log.With("component", "retention"),
	}
}

// Start runs an initial pass and then prunes on every interval until ctx is
// cancelled or Stop is called
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.RunOnce(ctx)

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx)
			case <-ctx.Done():
				s.log.Info("retention service stopped")
				return
			}
		}
	}()

	s.log.Info("retention service started", "interval", s.cleanupInterval, "max_age", s.maxAge)
}

// Stop cancels the loop and waits for it to exit
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RunOnce performs a single retention pass
func (s *Service) RunOnce(ctx context.Context) analyses.PruneResult {
	res, err := s.pruner.Prune(ctx, s.maxAge)
	if err != nil {
		s.log.Error("retention pass failed", "error", err)
		return res
	}
	if res.Runs > 0 || res.Analyses > 0 {
		s.log.Info("pruned expired results", "runs", res.Runs, "analyses", res.Analyses)
	} else {
		s.log.Debug("nothing to prune")
	}
	return res
}
