package wayback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"video_history/internal/domain"
	"video_history/internal/layout"
)

// FetchSnapshot downloads one capture and resolves it against the source's
// layouts. Metadata layouts come before removal notices, so unavailable pages
// are still classified.
func (s *Source) FetchSnapshot(ctx context.Context, snapshotURL string) (*domain.Capture, error) {
	var body string

	err := s.retry(ctx, "snapshot", func(ctx context.Context) error {
		var err error
		body, err = s.fetchBody(ctx, snapshotURL)
		return err
	})
	if err != nil {
		s.metrics.Snapshot(Kind(err))
		return nil, fmt.Errorf("fetch %s: %w", snapshotURL, err)
	}

	match, err := layout.ResolveDocument(body, s.layouts)
	if err != nil {
		s.metrics.Snapshot(Kind(err))
		return nil, fmt.Errorf("extract %s: %w", snapshotURL, err)
	}

	s.metrics.Snapshot(Kind(nil))
	s.metrics.LayoutMatched(match.Layout)

	return &domain.Capture{
		URL:    snapshotURL,
		Layout: match.Layout,
		Fields: match.Fields,
	}, nil
}

func (s *Source) fetchBody(ctx context.Context, url string) (string, error) {
	req, err := s.newRequest(ctx, url)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrInvalidURL
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", readError(err)
	}

	b, err := io.ReadAll(reader)
	if err != nil {
		return "", readError(err)
	}
	if !utf8.Valid(b) {
		return "", ErrDecode
	}

	return string(b), nil
}

func readError(err error) error {
	err = classify(err)
	if isTransient(err) {
		return err
	}
	return errors.Join(ErrDecode, err)
}
