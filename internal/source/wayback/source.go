// Package wayback talks to the Internet Archive: it lists the captures of a
// watch page and extracts video fields from each capture.
package wayback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"video_history/internal/layout"
	"video_history/internal/metrics"
)

const (
	SourceID          = "wayback"
	DefaultTimemapURL = "http://web.archive.org/web/timemap/link/"
	defaultUserAgent  = "VideoHistory/1.0"
)

var (
	// ErrInvalidURL means the archive has no capture at the URL. It is not retried.
	ErrInvalidURL = errors.New("capture not found")
	ErrTimeout    = errors.New("request timed out")
	ErrDecode     = errors.New("cannot decode response body")
)

// Config holds Wayback source configuration.
type Config struct {
	TimemapURL     string
	UserAgent      string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Source implements the archive index lookup and the snapshot fetcher.
type Source struct {
	httpClient     *http.Client
	timemapURL     string
	userAgent      string
	layouts        layout.Set
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// New creates a Wayback source resolving captures against layouts.
func New(cfg Config, layouts layout.Set, m *metrics.Metrics, logger *slog.Logger) *Source {
	if cfg.TimemapURL == "" {
		cfg.TimemapURL = DefaultTimemapURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		timemapURL:     cfg.TimemapURL,
		userAgent:      cfg.UserAgent,
		layouts:        layouts,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		metrics:        m,
		logger:         logger.With("source", SourceID),
	}
}

// retry runs fn until it succeeds, fails with a non-transient error or the
// attempts are exhausted.
func (s *Source) retry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}

		if attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.metrics.Retry(op)
		s.logger.Debug("request failed, retrying",
			"op", op,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return err
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

func (s *Source) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return req, nil
}

// classify maps transport errors onto ErrTimeout where applicable. Other
// errors are returned as is so isTransient can inspect them.
func classify(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isTransient reports connection-class failures worth another attempt.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrTimeout) {
		return true
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.retryable()
	}

	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.StatusCode)
}

func (e *statusError) retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Kind names the failure class of a fetch error for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, layout.ErrAllLayoutsFailed):
		return "no_layout"
	default:
		return "error"
	}
}
