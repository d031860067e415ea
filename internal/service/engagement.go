package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"video_history/internal/domain"
)

// EngagementService looks up share engagement for every input URL. Requests
// are issued one at a time so the token pool is drained predictably.
type EngagementService struct {
	input     URLReader
	source    EngagementSource
	store     EngagementStore
	runState  RunStateStore
	publisher Publisher
	logger    *slog.Logger
}

func NewEngagementService(
	input URLReader,
	source EngagementSource,
	store EngagementStore,
	runState RunStateStore,
	publisher Publisher,
	logger *slog.Logger,
) *EngagementService {
	return &EngagementService{
		input:     input,
		source:    source,
		store:     store,
		runState:  runState,
		publisher: publisher,
		logger:    logger.With("pipeline", domain.PipelineEngagement),
	}
}

func (s *EngagementService) Run(ctx context.Context) (*domain.RunStats, error) {
	startTime := time.Now()

	raw, err := s.input.ReadURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	processed, err := s.store.ProcessedURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load processed urls: %w", err)
	}

	stats := &domain.RunStats{Pipeline: domain.PipelineEngagement}
	seen := make(map[string]bool, len(raw))

	for _, r := range raw {
		u := strings.TrimSpace(r)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		stats.Input++

		if processed[u] {
			stats.Skipped++
			continue
		}

		e, err := s.source.Engagement(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Errors++
			s.logger.Warn("engagement lookup failed", "url", u, "error", err)
			continue
		}
		if e == nil {
			stats.Absent++
			continue
		}

		if err := s.store.SaveEngagement(ctx, e); err != nil {
			return stats, fmt.Errorf("save engagement %s: %w", u, err)
		}
		stats.Written++

		if s.publisher != nil {
			if err := s.publisher.PublishEngagement(ctx, e); err != nil {
				stats.Errors++
				s.logger.Error("publish engagement failed", "url", u, "error", err)
			} else {
				stats.Published++
			}
		}
	}

	if err := updateRunState(ctx, s.runState, stats); err != nil {
		return stats, fmt.Errorf("update run state: %w", err)
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("run completed",
		"input", stats.Input,
		"written", stats.Written,
		"skipped", stats.Skipped,
		"absent", stats.Absent,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}
