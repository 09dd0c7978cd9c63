package store

import (
	"context"
)

type Store interface {
	// Run history
	CreateSyncRun(ctx context.Context, run *SyncRun) error
	CompleteSyncRun(ctx context.Context, run *SyncRun) error
	ListSyncRuns(ctx context.Context, limit, offset int) ([]*SyncRun, error)
	GetLastSyncRun(ctx context.Context) (*SyncRun, error)

	// General
	Close() error
}
