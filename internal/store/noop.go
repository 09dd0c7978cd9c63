package store

import (
	"context"
)

// NoopStore is used when state storage is disabled. Sync runs still
// work; they just leave no history behind.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) CreateSyncRun(ctx context.Context, run *SyncRun) error   { return nil }
func (s *NoopStore) CompleteSyncRun(ctx context.Context, run *SyncRun) error { return nil }

func (s *NoopStore) ListSyncRuns(ctx context.Context, limit, offset int) ([]*SyncRun, error) {
	return nil, nil
}

func (s *NoopStore) GetLastSyncRun(ctx context.Context) (*SyncRun, error) {
	return nil, nil
}

func (s *NoopStore) Close() error { return nil }
