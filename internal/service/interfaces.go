package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"video_history/internal/domain"
)

type URLReader interface {
	ReadURLs(ctx context.Context) ([]string, error)
}

type SnapshotLister interface {
	ListSnapshots(ctx context.Context, canonicalURL string) ([]string, error)
}

type HistoryAssembler interface {
	Assemble(ctx context.Context, videoURL string, snapshots []string) (*domain.VideoRecord, bool)
}

type VideoStore interface {
	ProcessedURLs(ctx context.Context) (map[string]bool, error)
	SaveVideo(ctx context.Context, record *domain.VideoRecord) error
}

type EngagementSource interface {
	Engagement(ctx context.Context, url string) (*domain.Engagement, error)
}

type EngagementStore interface {
	ProcessedURLs(ctx context.Context) (map[string]bool, error)
	SaveEngagement(ctx context.Context, engagement *domain.Engagement) error
}

type RunStateStore interface {
	Get(ctx context.Context, pipeline string) (*domain.RunState, error)
	Update(ctx context.Context, state *domain.RunState) error
}

type Publisher interface {
	PublishVideo(ctx context.Context, record *domain.VideoRecord) error
	PublishEngagement(ctx context.Context, engagement *domain.Engagement) error
	Close() error
}
