// Package history assembles the archived history of a video from its
// snapshots, picking the most recent metadata and noting when the video
// appears to have been removed.
package history

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"video_history/internal/domain"
	"video_history/internal/source/wayback"
)

// statusOK marks a playability status of a live video.
const statusOK = `status":"OK"`

// Fetcher fetches and extracts a single snapshot.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, snapshotURL string) (*domain.Capture, error)
}

type Assembler struct {
	fetcher     Fetcher
	concurrency int
	logger      *slog.Logger
}

// NewAssembler returns an assembler issuing at most concurrency snapshot
// fetches per video at a time. Values below 1 mean sequential fetching.
func NewAssembler(fetcher Fetcher, concurrency int, logger *slog.Logger) *Assembler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Assembler{
		fetcher:     fetcher,
		concurrency: concurrency,
		logger:      logger,
	}
}

type fetchResult struct {
	capture *domain.Capture
	err     error
}

// Assemble walks snapshots, which must be ordered newest first, and returns
// the consolidated record of videoURL. It returns false when no usable data
// was found.
func (a *Assembler) Assemble(ctx context.Context, videoURL string, snapshots []string) (*domain.VideoRecord, bool) {
	logger := a.logger.With("url", videoURL)
	logger.Debug("getting video data", "snapshots", len(snapshots))

	results := a.fetchAll(ctx, snapshots)
	if ctx.Err() != nil {
		return nil, false
	}

	var acc accumulator
	for i, res := range results {
		if res.err != nil {
			logSkip(logger, snapshots[i], res.err)
			continue
		}
		seenRemoval := acc.firstRemovedURL != ""
		acc = acc.observe(domain.NewObservation(videoURL, res.capture, wayback.ScrapeDate(snapshots[i])))
		if !seenRemoval && acc.firstRemovedURL != "" {
			logger.Debug("found removal notice", "snapshot", snapshots[i])
		}
	}

	record, ok := acc.result()
	if !ok {
		logger.Warn("could not find data")
	}
	return record, ok
}

// fetchAll fetches every snapshot and returns the results in snapshot order,
// whatever order they complete in.
func (a *Assembler) fetchAll(ctx context.Context, snapshots []string) []fetchResult {
	results := make([]fetchResult, len(snapshots))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, snapshotURL := range snapshots {
		g.Go(func() error {
			logger := a.logger.With("snapshot", snapshotURL)
			logger.Debug("trying snapshot")
			capture, err := a.fetcher.FetchSnapshot(ctx, snapshotURL)
			results[i] = fetchResult{capture: capture, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func logSkip(logger *slog.Logger, snapshotURL string, err error) {
	kind := wayback.Kind(err)
	if kind == "no_layout" {
		logger.Debug("no layout matched snapshot", "snapshot", snapshotURL, "error", err)
		return
	}
	logger.Warn("skipping snapshot", "snapshot", snapshotURL, "kind", kind, "error", err)
}

type state int

const (
	searching state = iota
	done
)

// accumulator carries the assembly state through the snapshot sequence. It is
// passed and returned by value.
type accumulator struct {
	state           state
	main            domain.Observation
	removalAt       string
	firstRemovedURL string
	history         []domain.Observation
}

func (acc accumulator) observe(obs domain.Observation) accumulator {
	if acc.state == searching {
		switch {
		case obs.Title != "":
			acc.main = obs
			acc.removalAt = wayback.ScrapeDate(acc.firstRemovedURL)
			acc.state = done
		case isRemoval(obs) && acc.firstRemovedURL == "":
			acc.firstRemovedURL = obs.ArchiveURL
		}
	}

	// Clip capacity so accumulators never share a backing array.
	acc.history = append(acc.history[:len(acc.history):len(acc.history)], obs)
	return acc
}

func isRemoval(obs domain.Observation) bool {
	return obs.Status != "" && !strings.Contains(obs.Status, statusOK)
}

// result turns the final state into a record. A video whose only evidence is
// a removal notice yields nothing.
func (acc accumulator) result() (*domain.VideoRecord, bool) {
	if len(acc.history) == 0 {
		return nil, false
	}
	last := acc.history[len(acc.history)-1]

	record := &domain.VideoRecord{
		History: acc.history,
	}
	switch acc.state {
	case done:
		record.Observation = acc.main
		record.RemovalAt = acc.removalAt
		record.FirstRemovedURL = acc.firstRemovedURL
	case searching:
		if last.Status != "" && last.Title == "" {
			return nil, false
		}
		record.Observation = last
	}

	return record, true
}
