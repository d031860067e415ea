package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"video_history/internal/domain"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Run(context.Context) (*domain.RunStats, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.RunStats{Pipeline: domain.PipelineArchive}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestStart_RunsOnceWithoutInterval(t *testing.T) {
	runner := &countingRunner{}

	err := NewScheduler(runner, 0, testLogger()).Start(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int32(1), runner.calls.Load())
}

func TestStart_SingleRunReportsError(t *testing.T) {
	runner := &countingRunner{err: errors.New("read input: no such file")}

	err := NewScheduler(runner, 0, testLogger()).Start(context.Background())

	assert.ErrorContains(t, err, "read input")
}

func TestStart_RepeatsUntilCanceled(t *testing.T) {
	runner := &countingRunner{err: errors.New("transient")}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- NewScheduler(runner, 5*time.Millisecond, testLogger()).Start(ctx)
	}()

	assert.Eventually(t, func() bool { return runner.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
