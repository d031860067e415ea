package wayback

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"video_history/internal/domain"
	"video_history/internal/layout"
)

const videoURL = "https://youtube.com/watch?v=dQw4w9WgXcQ"

const timemapBody = `<https://youtube.com/watch?v=dQw4w9WgXcQ>; rel="original",
<http://web.archive.org/web/timemap/link/https://youtube.com/watch?v=dQw4w9WgXcQ>; rel="self"; type="application/link-format"; from="Thu, 01 Jan 2015 00:00:00 GMT",
<http://web.archive.org>; rel="timegate",
<http://web.archive.org/web/20150101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ>; rel="first memento"; datetime="Thu, 01 Jan 2015 00:00:00 GMT",
<http://web.archive.org/web/20160101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ>; rel="memento"; datetime="Fri, 01 Jan 2016 00:00:00 GMT",
<http://web.archive.org/web/20170101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ>; rel="last memento"; datetime="Sun, 01 Jan 2017 00:00:00 GMT"
`

const watchPage = `<html><head>
<meta name="title" content="Foo">
<meta itemprop="channelId" content="UC1">
<meta itemprop="duration" content="PT1M">
</head><body>
<span itemprop="author"><link itemprop="url" href="http://www.youtube.com/user/foo"></span>
<p id="eow-description">Bar</p>
<strong class="watch-time-text">Jan 1, 2015</strong>
<div class="watch-view-count">10 views</div>
</body></html>`

type SourceTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *slog.Logger
	hits   atomic.Int32
}

func (s *SourceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.hits.Store(0)
}

func TestSourceTestSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (s *SourceTestSuite) newSource(handler http.HandlerFunc, timeout time.Duration, attempts int) (*Source, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		handler(w, r)
	}))
	s.T().Cleanup(srv.Close)

	src := New(Config{
		TimemapURL:     srv.URL + "/timemap/link/",
		Timeout:        timeout,
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, layout.YouTube(), nil, s.logger)

	return src, srv
}

func (s *SourceTestSuite) TestParseTimemap_NewestFirst() {
	snapshots, err := parseTimemap(strings.NewReader(timemapBody))
	s.Require().NoError(err)
	s.Equal([]string{
		"http://web.archive.org/web/20170101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://web.archive.org/web/20160101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://web.archive.org/web/20150101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, snapshots)
}

func (s *SourceTestSuite) TestParseTimemap_Empty() {
	snapshots, err := parseTimemap(strings.NewReader(""))
	s.NoError(err)
	s.Empty(snapshots)
}

func (s *SourceTestSuite) TestListSnapshots() {
	var gotPath string
	src, _ := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		fmt.Fprint(w, timemapBody)
	}, time.Second, 3)

	snapshots, err := src.ListSnapshots(s.ctx, videoURL)
	s.Require().NoError(err)
	s.Len(snapshots, 3)
	s.Equal("/timemap/link/"+videoURL, gotPath)
	s.Equal("20170101000000", ScrapeDate(snapshots[0]))
}

func (s *SourceTestSuite) TestListSnapshots_NeverCaptured() {
	src, _ := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, time.Second, 3)

	snapshots, err := src.ListSnapshots(s.ctx, videoURL)
	s.NoError(err)
	s.Empty(snapshots)
	s.Equal(int32(1), s.hits.Load())
}

func (s *SourceTestSuite) TestListSnapshots_RetriesServerErrors() {
	src, _ := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		if s.hits.Load() < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, timemapBody)
	}, time.Second, 5)

	snapshots, err := src.ListSnapshots(s.ctx, videoURL)
	s.Require().NoError(err)
	s.Len(snapshots, 3)
	s.Equal(int32(3), s.hits.Load())
}

func (s *SourceTestSuite) TestListSnapshots_Timeout() {
	src, _ := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}, 20*time.Millisecond, 2)

	_, err := src.ListSnapshots(s.ctx, videoURL)
	s.ErrorIs(err, ErrTimeout)
	s.Equal("timeout", Kind(err))
	s.Equal(int32(2), s.hits.Load())
}

func (s *SourceTestSuite) TestFetchSnapshot() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, watchPage)
	}, time.Second, 3)

	url := srv.URL + "/web/20150101000000/https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	capture, err := src.FetchSnapshot(s.ctx, url)
	s.Require().NoError(err)
	s.Equal(url, capture.URL)
	s.Equal("watch7", capture.Layout)
	s.Equal("Foo", capture.Fields[domain.FieldTitle])
	s.Equal("Bar", capture.Fields[domain.FieldDescription])
	s.Equal("", capture.Fields[domain.FieldStatus])
}

func (s *SourceTestSuite) TestFetchSnapshot_DecodesDeclaredCharset() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1252")
		fmt.Fprint(w, strings.Replace(watchPage, `content="Foo"`, "content=\"Caf\xe9\"", 1))
	}, time.Second, 3)

	capture, err := src.FetchSnapshot(s.ctx, srv.URL+"/page")
	s.Require().NoError(err)
	s.Equal("Café", capture.Fields[domain.FieldTitle])
}

func (s *SourceTestSuite) TestFetchSnapshot_NotFoundIsNotRetried() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, time.Second, 5)

	_, err := src.FetchSnapshot(s.ctx, srv.URL+"/missing")
	s.ErrorIs(err, ErrInvalidURL)
	s.Equal("invalid_url", Kind(err))
	s.Equal(int32(1), s.hits.Load())
}

func (s *SourceTestSuite) TestFetchSnapshot_NoLayout() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>Wayback Machine error page</p></body></html>")
	}, time.Second, 5)

	_, err := src.FetchSnapshot(s.ctx, srv.URL+"/broken")
	s.ErrorIs(err, layout.ErrAllLayoutsFailed)
	s.Equal("no_layout", Kind(err))
	s.Equal(int32(1), s.hits.Load())
}

func (s *SourceTestSuite) TestFetchSnapshot_InvalidUTF8() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>\xff\xfe</body></html>"))
	}, time.Second, 5)

	_, err := src.FetchSnapshot(s.ctx, srv.URL+"/garbled")
	s.ErrorIs(err, ErrDecode)
	s.Equal("decode", Kind(err))
}

func (s *SourceTestSuite) TestFetchSnapshot_RetriesDroppedConnections() {
	src, srv := s.newSource(func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}, time.Second, 3)

	_, err := src.FetchSnapshot(s.ctx, srv.URL+"/flaky")
	s.Error(err)
	s.Equal("error", Kind(err))
	s.Equal(int32(3), s.hits.Load())
}

func (s *SourceTestSuite) TestCalculateBackoff() {
	src := &Source{initialBackoff: time.Second, maxBackoff: 5 * time.Second}
	s.Equal(time.Second, src.calculateBackoff(1))
	s.Equal(2*time.Second, src.calculateBackoff(2))
	s.Equal(4*time.Second, src.calculateBackoff(3))
	s.Equal(5*time.Second, src.calculateBackoff(4))
}
