package domain

import (
	"context"
	"io"
)

type IngestRequest struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type Service interface {
	Ingest(context.Context, IngestRequest) (Report, error)
	ListRuns(ctx context.Context, limit int) ([]IngestionRun, error)
}

// Locker serialises store reloads across instances.
type Locker interface {
	TryLock(ctx context.Context) (token string, ok bool, err error)
	Release(ctx context.Context, token string) error
}

// Publisher announces completed reloads.
type Publisher interface {
	PublishReloaded(ctx context.Context, event ReloadedEvent) error
}
