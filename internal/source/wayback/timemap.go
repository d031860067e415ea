package wayback

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// ListSnapshots returns the capture URLs of canonicalURL, newest first.
func (s *Source) ListSnapshots(ctx context.Context, canonicalURL string) ([]string, error) {
	var snapshots []string

	err := s.retry(ctx, "timemap", func(ctx context.Context) error {
		var err error
		snapshots, err = s.fetchTimemap(ctx, canonicalURL)
		return err
	})
	if err != nil {
		s.metrics.Lookup("error")
		return nil, fmt.Errorf("list snapshots of %s: %w", canonicalURL, err)
	}

	s.metrics.Lookup("ok")
	s.logger.Debug("found archive links", "url", canonicalURL, "count", len(snapshots))

	return snapshots, nil
}

func (s *Source) fetchTimemap(ctx context.Context, canonicalURL string) ([]string, error) {
	req, err := s.newRequest(ctx, s.timemapURL+canonicalURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	// The timemap answers 404 for URLs that were never captured.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{StatusCode: resp.StatusCode}
	}

	snapshots, err := parseTimemap(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	return snapshots, nil
}

// parseTimemap reads a link-format timemap and returns the memento URLs in
// reverse document order. The archive lists captures oldest first.
func parseTimemap(r io.Reader) ([]string, error) {
	var snapshots []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		target, rel, ok := parseLink(scanner.Text())
		if !ok || !isMemento(rel) {
			continue
		}
		snapshots = append(snapshots, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read timemap: %w", err)
	}

	slices.Reverse(snapshots)
	return snapshots, nil
}

// parseLink splits `<url>; rel="..."; ...,` into the url and its rel value.
func parseLink(line string) (target, rel string, ok bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ",")
	if !strings.HasPrefix(line, "<") {
		return "", "", false
	}
	end := strings.Index(line, ">")
	if end < 0 {
		return "", "", false
	}
	target = line[1:end]

	for _, param := range strings.Split(line[end+1:], ";") {
		key, value, found := strings.Cut(strings.TrimSpace(param), "=")
		if found && key == "rel" {
			rel = strings.Trim(value, `"`)
		}
	}
	return target, rel, target != ""
}

func isMemento(rel string) bool {
	return slices.Contains(strings.Fields(rel), "memento")
}
