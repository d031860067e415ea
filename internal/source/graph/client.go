// Package graph queries share engagement for URLs from the Graph API.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"video_history/internal/domain"
	"video_history/internal/metrics"
)

const (
	DefaultBaseURL = "https://graph.facebook.com/v7.0/"

	rateLimitMessage = "Application request limit reached"
)

var ErrRateLimited = errors.New("application request limit reached")

// Config holds Graph API client configuration.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RetryWait         time.Duration
	MaxAttempts       int
	RequestsPerSecond float64
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	tokens      *TokenRing
	limiter     *rate.Limiter
	retryWait   time.Duration
	maxAttempts int
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewClient(cfg Config, tokens *TokenRing, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		tokens:      tokens,
		limiter:     limiter,
		retryWait:   cfg.RetryWait,
		maxAttempts: cfg.MaxAttempts,
		metrics:     m,
		logger:      logger.With("source", "graph"),
	}
}

// Engagement returns the engagement counters of target. A nil result with a
// nil error means the API answered but has nothing usable for the URL.
// Rate limits and connection failures switch to the next token and retry.
func (c *Client) Engagement(ctx context.Context, target string) (*domain.Engagement, error) {
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var e *domain.Engagement
		e, err = c.fetch(ctx, target)
		if err == nil {
			if e == nil {
				c.metrics.Engagement("empty")
			} else {
				c.metrics.Engagement("ok")
			}
			return e, nil
		}
		if !isRetryable(err) {
			break
		}
		if attempt == c.maxAttempts {
			break
		}

		c.tokens.Rotate()
		c.metrics.TokenRotated()
		c.logger.Warn("graph request failed, switching token",
			"url", target,
			"attempt", attempt,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryWait):
		}
	}

	c.metrics.Engagement("error")
	return nil, fmt.Errorf("fetch engagement for %s: %w", target, err)
}

func (c *Client) fetch(ctx context.Context, target string) (*domain.Engagement, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("fields", "engagement")
	params.Set("access_token", c.tokens.Current())
	params.Set("id", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var data engagementResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Debug("unparsable graph response", "url", target, "status", resp.StatusCode)
		return nil, nil
	}

	if data.Error != nil {
		if strings.Contains(data.Error.Message, rateLimitMessage) {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, data.Error.Message)
		}
		c.logger.Debug("graph api error",
			"url", target,
			"code", data.Error.Code,
			"message", data.Error.Message,
		)
		return nil, nil
	}
	if data.Engagement == nil {
		return nil, nil
	}

	return &domain.Engagement{
		URL:                target,
		ReactionCount:      data.Engagement.ReactionCount,
		CommentCount:       data.Engagement.CommentCount,
		ShareCount:         data.Engagement.ShareCount,
		CommentPluginCount: data.Engagement.CommentPluginCount,
	}, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || isTimeout(err) {
		return true
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

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
