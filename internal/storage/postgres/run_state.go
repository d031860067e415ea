package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"video_history/internal/domain"
)

type RunStateStore struct {
	db *sqlx.DB
}

func NewRunStateStore(db *sqlx.DB) *RunStateStore {
	return &RunStateStore{db: db}
}

func (s *RunStateStore) Get(ctx context.Context, pipeline string) (*domain.RunState, error) {
	var state domain.RunState
	query := `
		SELECT id, pipeline, last_run_at, last_written, total_written
		FROM run_state
		WHERE pipeline = $1`

	err := s.db.GetContext(ctx, &state, query, pipeline)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.RunState{Pipeline: pipeline}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RunStateStore) Update(ctx context.Context, state *domain.RunState) error {
	query := `
		INSERT INTO run_state (pipeline, last_run_at, last_written, total_written)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pipeline) DO UPDATE SET
			last_run_at = EXCLUDED.last_run_at,
			last_written = EXCLUDED.last_written,
			total_written = EXCLUDED.total_written`

	_, err := s.db.ExecContext(ctx, query,
		state.Pipeline,
		state.LastRunAt,
		state.LastWritten,
		state.TotalWritten,
	)
	return err
}
