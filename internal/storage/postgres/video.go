package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"video_history/internal/domain"
)

// VideoStore keeps one row per video in videos and its archived history in
// video_snapshots, newest first by position.
type VideoStore struct {
	db *sqlx.DB
	tx *TransactionManager
}

func NewVideoStore(db *sqlx.DB, tx *TransactionManager) *VideoStore {
	return &VideoStore{db: db, tx: tx}
}

// SaveVideo upserts the video row and replaces its snapshots atomically.
func (s *VideoStore) SaveVideo(ctx context.Context, record *domain.VideoRecord) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		id, err := s.upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("upsert video: %w", err)
		}
		if err := s.replaceSnapshots(txCtx, id, record.History); err != nil {
			return fmt.Errorf("replace snapshots: %w", err)
		}
		return nil
	})
}

func (s *VideoStore) upsert(ctx context.Context, record *domain.VideoRecord) (int64, error) {
	query := `
		INSERT INTO videos (
			url, status, title, description, published_at, view_count, channel_id,
			duration, channel_url, subscriber_count, scraped_at, removal_at, archive_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
		ON CONFLICT (url) DO UPDATE SET
			status = EXCLUDED.status,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			published_at = EXCLUDED.published_at,
			view_count = EXCLUDED.view_count,
			channel_id = EXCLUDED.channel_id,
			duration = EXCLUDED.duration,
			channel_url = EXCLUDED.channel_url,
			subscriber_count = EXCLUDED.subscriber_count,
			scraped_at = EXCLUDED.scraped_at,
			removal_at = EXCLUDED.removal_at,
			archive_url = EXCLUDED.archive_url,
			updated_at = NOW()
		RETURNING id`

	o := record.Observation
	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		o.URL,
		o.Status,
		o.Title,
		o.Description,
		o.PublishedAt,
		o.ViewCount,
		o.ChannelID,
		o.Duration,
		o.ChannelURL,
		o.SubscriberCount,
		o.ScrapedAt,
		record.RemovalAt,
		o.ArchiveURL,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *VideoStore) replaceSnapshots(ctx context.Context, videoID int64, history []domain.Observation) error {
	exec := GetExecutor(ctx, s.db)

	if _, err := exec.ExecContext(ctx, "DELETE FROM video_snapshots WHERE video_id = $1", videoID); err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	archiveURLs := make([]string, len(history))
	scrapedAt := make([]string, len(history))
	statuses := make([]string, len(history))
	titles := make([]string, len(history))
	data := make([]string, len(history))
	for i, o := range history {
		b, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("marshal observation: %w", err)
		}
		archiveURLs[i] = o.ArchiveURL
		scrapedAt[i] = o.ScrapedAt
		statuses[i] = o.Status
		titles[i] = o.Title
		data[i] = string(b)
	}

	query := `
		INSERT INTO video_snapshots (video_id, position, archive_url, scraped_at, status, title, data)
		SELECT $1, t.ord - 1, t.archive_url, t.scraped_at, t.status, t.title, t.data::jsonb
		FROM unnest($2::text[], $3::text[], $4::text[], $5::text[], $6::text[]) WITH ORDINALITY
			AS t(archive_url, scraped_at, status, title, data, ord)`

	_, err := exec.ExecContext(ctx, query,
		videoID,
		pq.Array(archiveURLs),
		pq.Array(scrapedAt),
		pq.Array(statuses),
		pq.Array(titles),
		pq.Array(data),
	)
	return err
}

func (s *VideoStore) ProcessedURLs(ctx context.Context) (map[string]bool, error) {
	return selectURLs(ctx, s.db, "SELECT url FROM videos")
}

// History returns the stored observations of url, newest first.
func (s *VideoStore) History(ctx context.Context, url string) ([]domain.Observation, error) {
	query := `
		SELECT vs.data
		FROM video_snapshots vs
		INNER JOIN videos v ON v.id = vs.video_id
		WHERE v.url = $1
		ORDER BY vs.position`

	var rows [][]byte
	if err := s.db.SelectContext(ctx, &rows, query, url); err != nil {
		return nil, err
	}

	history := make([]domain.Observation, len(rows))
	for i, raw := range rows {
		if err := json.Unmarshal(raw, &history[i]); err != nil {
			return nil, fmt.Errorf("unmarshal observation: %w", err)
		}
	}
	return history, nil
}

func selectURLs(ctx context.Context, db *sqlx.DB, query string) (map[string]bool, error) {
	var urls []string
	if err := db.SelectContext(ctx, &urls, query); err != nil {
		return nil, err
	}

	processed := make(map[string]bool, len(urls))
	for _, u := range urls {
		processed[u] = true
	}
	return processed, nil
}
