package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"video_history/internal/domain"
)

// appender appends rows to a CSV file, writing the header first when the file
// is new or empty. Every row is flushed before write returns.
type appender struct {
	mu   sync.Mutex
	path string
	file *os.File
	w    *csv.Writer
}

func openAppender(path string, header []string) (*appender, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat output: %w", err)
	}

	a := &appender{path: path, file: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := a.write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	return a, nil
}

func (a *appender) write(row []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.w.Write(row); err != nil {
		return err
	}
	a.w.Flush()
	return a.w.Error()
}

func (a *appender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.w.Flush()
	if err := a.w.Error(); err != nil {
		a.file.Close()
		return err
	}
	return a.file.Close()
}

// VideoWriter stores video records as rows of domain.VideoColumns.
type VideoWriter struct {
	*appender
}

func NewVideoWriter(path string) (*VideoWriter, error) {
	a, err := openAppender(path, domain.VideoColumns)
	if err != nil {
		return nil, err
	}
	return &VideoWriter{appender: a}, nil
}

func (w *VideoWriter) ProcessedURLs(ctx context.Context) (map[string]bool, error) {
	return processedURLs(ctx, w.path)
}

func (w *VideoWriter) SaveVideo(_ context.Context, record *domain.VideoRecord) error {
	row, err := record.Row()
	if err != nil {
		return err
	}
	if err := w.write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// EngagementWriter stores engagement counters as rows of
// domain.EngagementColumns.
type EngagementWriter struct {
	*appender
}

func NewEngagementWriter(path string) (*EngagementWriter, error) {
	a, err := openAppender(path, domain.EngagementColumns)
	if err != nil {
		return nil, err
	}
	return &EngagementWriter{appender: a}, nil
}

func (w *EngagementWriter) ProcessedURLs(ctx context.Context) (map[string]bool, error) {
	return processedURLs(ctx, w.path)
}

func (w *EngagementWriter) SaveEngagement(_ context.Context, e *domain.Engagement) error {
	if err := w.write(e.Row()); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}
