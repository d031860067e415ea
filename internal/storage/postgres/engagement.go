package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"video_history/internal/domain"
)

type EngagementStore struct {
	db *sqlx.DB
}

func NewEngagementStore(db *sqlx.DB) *EngagementStore {
	return &EngagementStore{db: db}
}

func (s *EngagementStore) SaveEngagement(ctx context.Context, e *domain.Engagement) error {
	query := `
		INSERT INTO engagements (url, reaction_count, comment_count, share_count, comment_plugin_count)
		VALUES (:url, :reaction_count, :comment_count, :share_count, :comment_plugin_count)
		ON CONFLICT (url) DO UPDATE SET
			reaction_count = EXCLUDED.reaction_count,
			comment_count = EXCLUDED.comment_count,
			share_count = EXCLUDED.share_count,
			comment_plugin_count = EXCLUDED.comment_plugin_count,
			fetched_at = NOW()`

	_, err := s.db.NamedExecContext(ctx, query, e)
	return err
}

func (s *EngagementStore) Get(ctx context.Context, url string) (*domain.Engagement, error) {
	var e domain.Engagement
	query := `
		SELECT url, reaction_count, comment_count, share_count, comment_plugin_count
		FROM engagements
		WHERE url = $1`

	if err := s.db.GetContext(ctx, &e, query, url); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EngagementStore) ProcessedURLs(ctx context.Context) (map[string]bool, error) {
	return selectURLs(ctx, s.db, "SELECT url FROM engagements")
}
