//go:build integration

package postgres

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"video_history/internal/domain"
)

const (
	videoA = "https://youtube.com/watch?v=AAAAAAAAAAA"
	videoB = "https://youtube.com/watch?v=BBBBBBBBBBB"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_videos.up.sql"),
			filepath.Join(migrationsPath, "002_create_engagements.up.sql"),
			filepath.Join(migrationsPath, "003_create_run_state.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM video_snapshots")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM videos")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM engagements")
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM run_state")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) videoStore() *VideoStore {
	return NewVideoStore(s.db, NewTransactionManager(s.db))
}

func removedVideo(url string) *domain.VideoRecord {
	removed := domain.Observation{
		URL:        url,
		Status:     `{"status":"ERROR","reason":"Video unavailable"}`,
		ScrapedAt:  "20160101000000",
		ArchiveURL: "http://web.archive.org/web/20160101000000/" + url,
	}
	live := domain.Observation{
		URL:        url,
		Title:      "Foo",
		ViewCount:  "10 views",
		ScrapedAt:  "20150101000000",
		ArchiveURL: "http://web.archive.org/web/20150101000000/" + url,
	}
	return &domain.VideoRecord{
		Observation: live,
		RemovalAt:   "20160101000000",
		History:     []domain.Observation{removed, live},
	}
}

func (s *PostgresIntegrationSuite) TestVideoStore_SaveVideo_Insert() {
	store := s.videoStore()

	err := store.SaveVideo(s.ctx, removedVideo(videoA))
	s.Require().NoError(err)

	var row struct {
		Title     string `db:"title"`
		RemovalAt string `db:"removal_at"`
	}
	err = s.db.GetContext(s.ctx, &row, "SELECT title, removal_at FROM videos WHERE url = $1", videoA)
	s.Require().NoError(err)
	s.Equal("Foo", row.Title)
	s.Equal("20160101000000", row.RemovalAt)

	history, err := store.History(s.ctx, videoA)
	s.Require().NoError(err)
	s.Equal(removedVideo(videoA).History, history)
}

func (s *PostgresIntegrationSuite) TestVideoStore_SaveVideo_ReplacesSnapshots() {
	store := s.videoStore()
	s.Require().NoError(store.SaveVideo(s.ctx, removedVideo(videoA)))

	updated := removedVideo(videoA)
	updated.Title = "Foo (remastered)"
	updated.History = updated.History[1:]
	s.Require().NoError(store.SaveVideo(s.ctx, updated))

	var count int
	err := s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM videos")
	s.NoError(err)
	s.Equal(1, count)

	history, err := store.History(s.ctx, videoA)
	s.Require().NoError(err)
	s.Len(history, 1)
	s.Equal("Foo", history[0].Title)

	var title string
	err = s.db.GetContext(s.ctx, &title, "SELECT title FROM videos WHERE url = $1", videoA)
	s.NoError(err)
	s.Equal("Foo (remastered)", title)
}

func (s *PostgresIntegrationSuite) TestVideoStore_SaveVideo_EmptyHistory() {
	store := s.videoStore()

	err := store.SaveVideo(s.ctx, &domain.VideoRecord{Observation: domain.Observation{URL: videoA}})
	s.Require().NoError(err)

	history, err := store.History(s.ctx, videoA)
	s.NoError(err)
	s.Empty(history)
}

func (s *PostgresIntegrationSuite) TestVideoStore_ProcessedURLs() {
	store := s.videoStore()
	s.Require().NoError(store.SaveVideo(s.ctx, removedVideo(videoA)))
	s.Require().NoError(store.SaveVideo(s.ctx, removedVideo(videoB)))

	processed, err := store.ProcessedURLs(s.ctx)

	s.Require().NoError(err)
	s.Equal(map[string]bool{videoA: true, videoB: true}, processed)
}

func (s *PostgresIntegrationSuite) TestEngagementStore_SaveAndUpdate() {
	store := NewEngagementStore(s.db)

	s.Require().NoError(store.SaveEngagement(s.ctx, &domain.Engagement{URL: videoA, ReactionCount: 1}))
	s.Require().NoError(store.SaveEngagement(s.ctx, &domain.Engagement{URL: videoA, ReactionCount: 5, ShareCount: 2}))

	e, err := store.Get(s.ctx, videoA)
	s.Require().NoError(err)
	s.Equal(&domain.Engagement{URL: videoA, ReactionCount: 5, ShareCount: 2}, e)

	processed, err := store.ProcessedURLs(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string]bool{videoA: true}, processed)
}

func (s *PostgresIntegrationSuite) TestRunStateStore_GetNew() {
	store := NewRunStateStore(s.db)

	state, err := store.Get(s.ctx, domain.PipelineArchive)
	s.NoError(err)
	s.NotNil(state)
	s.Equal(domain.PipelineArchive, state.Pipeline)
	s.True(state.LastRunAt.IsZero())
	s.Equal(int64(0), state.TotalWritten)
}

func (s *PostgresIntegrationSuite) TestRunStateStore_UpdateAndGet() {
	store := NewRunStateStore(s.db)
	now := time.Now().Truncate(time.Microsecond)

	state := &domain.RunState{
		Pipeline:     domain.PipelineArchive,
		LastRunAt:    now,
		LastWritten:  8,
		TotalWritten: 100,
	}
	s.Require().NoError(store.Update(s.ctx, state))

	state.LastWritten = 4
	state.TotalWritten = 104
	s.Require().NoError(store.Update(s.ctx, state))

	retrieved, err := store.Get(s.ctx, domain.PipelineArchive)
	s.NoError(err)
	s.Equal(int64(4), retrieved.LastWritten)
	s.Equal(int64(104), retrieved.TotalWritten)
	s.WithinDuration(now, retrieved.LastRunAt, time.Second)
}

func (s *PostgresIntegrationSuite) TestTransaction_Rollback() {
	tm := NewTransactionManager(s.db)
	store := NewVideoStore(s.db, tm)
	s.Require().NoError(store.SaveVideo(s.ctx, removedVideo(videoA)))

	err := tm.WithTransaction(s.ctx, func(ctx context.Context) error {
		// Joins the outer transaction.
		if err := store.SaveVideo(ctx, removedVideo(videoB)); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.Error(err)

	var count int
	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM videos WHERE url = $1", videoB)
	s.NoError(err)
	s.Equal(0, count)

	err = s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM videos WHERE url = $1", videoA)
	s.NoError(err)
	s.Equal(1, count)
}
