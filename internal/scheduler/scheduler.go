package scheduler

import (
	"context"
	"log/slog"
	"time"

	"video_history/internal/domain"
)

// Runner is one pipeline pass. Runs resume from what the sink already holds,
// so repeating a run only processes URLs added since.
type Runner interface {
	Run(ctx context.Context) (*domain.RunStats, error)
}

type Scheduler struct {
	runner   Runner
	interval time.Duration
	logger   *slog.Logger
}

// NewScheduler returns a scheduler repeating runner every interval. A zero
// interval runs it exactly once.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Start blocks until ctx is done, or until the single run finishes when no
// interval is set. Only a single run reports its error.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		_, err := s.runner.Run(ctx)
		return err
	}

	s.logger.Info("scheduler started", "interval", s.interval)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	stats, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("run failed", "error", err)
		return
	}
	s.logger.Debug("run finished", "pipeline", stats.Pipeline, "written", stats.Written)
}
