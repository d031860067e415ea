package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"video_history/internal/config"
	"video_history/internal/domain"
	"video_history/internal/metrics"
	"video_history/internal/source/wayback"
)

type ArchiveService struct {
	input     URLReader
	index     SnapshotLister
	assembler HistoryAssembler
	store     VideoStore
	runState  RunStateStore
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	config    config.PipelineConfig
}

// NewArchiveService wires the archive pipeline. runState and publisher may be nil.
func NewArchiveService(
	input URLReader,
	index SnapshotLister,
	assembler HistoryAssembler,
	store VideoStore,
	runState RunStateStore,
	publisher Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	cfg config.PipelineConfig,
) *ArchiveService {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &ArchiveService{
		input:     input,
		index:     index,
		assembler: assembler,
		store:     store,
		runState:  runState,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("pipeline", domain.PipelineArchive),
		config:    cfg,
	}
}

// video is the per-URL state of a batch. Lookups and assemblies fill it in
// from separate goroutines; only the driver reads it afterwards.
type video struct {
	url       string
	snapshots []string
	lookupErr error
	record    *domain.VideoRecord
	found     bool
}

func (s *ArchiveService) Run(ctx context.Context) (*domain.RunStats, error) {
	startTime := time.Now()

	raw, err := s.input.ReadURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	processed, err := s.store.ProcessedURLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load processed urls: %w", err)
	}

	stats := &domain.RunStats{Pipeline: domain.PipelineArchive}
	urls := s.filter(raw, processed, stats)

	s.logger.Info("starting run",
		"input", stats.Input,
		"skipped", stats.Skipped,
		"invalid", stats.Invalid,
		"to_process", len(urls),
		"batch_size", s.config.BatchSize,
	)

	for start := 0; start < len(urls); start += s.config.BatchSize {
		end := min(start+s.config.BatchSize, len(urls))
		if err := s.runBatch(ctx, urls[start:end], stats); err != nil {
			return stats, err
		}
	}

	if err := updateRunState(ctx, s.runState, stats); err != nil {
		return stats, fmt.Errorf("update run state: %w", err)
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("run completed",
		"written", stats.Written,
		"absent", stats.Absent,
		"lookups_failed", stats.LookupsFailed,
		"errors", stats.Errors,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

// filter canonicalises and de-duplicates the input, then drops URLs that were
// already processed or that cannot be a watch page.
func (s *ArchiveService) filter(raw []string, processed map[string]bool, stats *domain.RunStats) []string {
	seen := make(map[string]bool, len(raw))
	var urls []string

	for _, r := range raw {
		u := wayback.CanonicalURL(strings.TrimSpace(r))
		if seen[u] {
			continue
		}
		seen[u] = true
		stats.Input++

		if processed[u] {
			stats.Skipped++
			s.metrics.Video("skipped")
			continue
		}
		if !wayback.ValidURL(u) {
			stats.Invalid++
			s.metrics.Video("invalid")
			s.logger.Debug("dropping invalid url", "url", u)
			continue
		}
		urls = append(urls, u)
	}

	return urls
}

func (s *ArchiveService) runBatch(ctx context.Context, urls []string, stats *domain.RunStats) error {
	videos := make([]video, len(urls))
	for i, u := range urls {
		videos[i].url = u
	}

	var lookups errgroup.Group
	for i := range videos {
		v := &videos[i]
		lookups.Go(func() error {
			v.snapshots, v.lookupErr = s.index.ListSnapshots(ctx, v.url)
			return nil
		})
	}
	_ = lookups.Wait()

	var assemblies errgroup.Group
	for i := range videos {
		v := &videos[i]
		if v.lookupErr != nil || len(v.snapshots) == 0 {
			continue
		}
		assemblies.Go(func() error {
			v.record, v.found = s.assembler.Assemble(ctx, v.url, v.snapshots)
			return nil
		})
	}
	_ = assemblies.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	for i := range videos {
		if err := s.finish(ctx, &videos[i], stats); err != nil {
			return err
		}
	}

	return nil
}

func (s *ArchiveService) finish(ctx context.Context, v *video, stats *domain.RunStats) error {
	switch {
	case v.lookupErr != nil:
		stats.LookupsFailed++
		s.metrics.Video("lookup_failed")
		s.logger.Warn("snapshot lookup failed", "url", v.url, "error", v.lookupErr)
		return nil
	case !v.found:
		stats.Absent++
		s.metrics.Video("absent")
		s.logger.Debug("no archived data", "url", v.url, "snapshots", len(v.snapshots))
		return nil
	}

	if err := s.store.SaveVideo(ctx, v.record); err != nil {
		return fmt.Errorf("save video %s: %w", v.url, err)
	}
	stats.Written++
	s.metrics.Video("written")

	if s.publisher != nil {
		if err := s.publisher.PublishVideo(ctx, v.record); err != nil {
			stats.Errors++
			s.logger.Error("publish video failed", "url", v.url, "error", err)
		} else {
			stats.Published++
		}
	}

	return nil
}

func updateRunState(ctx context.Context, store RunStateStore, stats *domain.RunStats) error {
	if store == nil {
		return nil
	}

	state, err := store.Get(ctx, stats.Pipeline)
	if err != nil {
		return err
	}

	state.Pipeline = stats.Pipeline
	state.LastRunAt = time.Now()
	state.LastWritten = int64(stats.Written)
	state.TotalWritten += int64(stats.Written)

	return store.Update(ctx, state)
}
