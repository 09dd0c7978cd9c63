package sync

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notion-sheets-sync/internal/config"
	"notion-sheets-sync/internal/logger"
	"notion-sheets-sync/internal/store"
)

// Direction selects which side of the pair is the source of truth for
// a run.
type Direction string

const (
	DirectionNotionToSheets Direction = "notion_to_sheets"
	DirectionSheetsToNotion Direction = "sheets_to_notion"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionNotionToSheets, DirectionSheetsToNotion:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown sync direction %q", s)
	}
}

// Manager owns the lifecycle of sync runs: one engine per run, a
// mutex-guarded status so no two directional runs ever overlap against
// the same sheet, and run records in the state store.
type Manager struct {
	cfg    *config.Config
	notion NotionAPI
	sheet  Sheet
	store  store.Store

	mu        sync.Mutex
	status    string
	lastStats Snapshot
	progress  ProgressFunc
}

func NewManager(cfg *config.Config, api NotionAPI, sheet Sheet, st store.Store) *Manager {
	return &Manager{
		cfg:    cfg,
		notion: api,
		sheet:  sheet,
		store:  st,
		status: "idle",
	}
}

// SetProgressFunc installs an optional progress sink. Must be called
// before triggering a run.
func (m *Manager) SetProgressFunc(fn ProgressFunc) {
	m.progress = fn
}

// TriggerSync starts a directional run in the background. Returns
// ErrSyncRunning if a run is already in flight.
func (m *Manager) TriggerSync(direction Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == "running" {
		return ErrSyncRunning
	}
	m.status = "running"

	go m.run(direction)
	return nil
}

// RunSync executes a directional run synchronously. Used by the
// scheduler and by callers that need the result.
func (m *Manager) RunSync(ctx context.Context, direction Direction) (Snapshot, error) {
	m.mu.Lock()
	if m.status == "running" {
		m.mu.Unlock()
		return Snapshot{}, ErrSyncRunning
	}
	m.status = "running"
	m.mu.Unlock()

	return m.execute(ctx, direction)
}

func (m *Manager) run(direction Direction) {
	_, _ = m.execute(context.Background(), direction)
}

func (m *Manager) execute(ctx context.Context, direction Direction) (Snapshot, error) {
	defer func() {
		m.mu.Lock()
		m.status = "idle"
		m.mu.Unlock()
	}()

	run := &store.SyncRun{
		ID:        uuid.New().String(),
		Direction: string(direction),
		StartedAt: time.Now().UTC(),
		Status:    "running",
	}
	if err := m.store.CreateSyncRun(ctx, run); err != nil {
		logger.Log.Warn("Failed to record sync run", zap.Error(err))
	}

	logger.Log.Info("Starting sync run",
		zap.String("run_id", run.ID), zap.String("direction", string(direction)))

	stats, syncErr := m.executeEngine(ctx, direction)

	m.mu.Lock()
	m.lastStats = stats
	m.mu.Unlock()

	run.CompletedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	run.Created = stats.Created
	run.Updated = stats.Updated
	run.Errors = stats.Errors
	if syncErr != nil {
		run.Status = "error"
		run.ErrorMessage = sql.NullString{String: syncErr.Error(), Valid: true}
		logger.Log.Error("Sync run failed",
			zap.String("run_id", run.ID), zap.Error(syncErr))
	} else {
		run.Status = "success"
		logger.Log.Info("Sync run complete",
			zap.String("run_id", run.ID),
			zap.Int("created", stats.Created),
			zap.Int("updated", stats.Updated),
			zap.Int("errors", stats.Errors))
	}
	if err := m.store.CompleteSyncRun(ctx, run); err != nil {
		logger.Log.Warn("Failed to complete sync run record", zap.Error(err))
	}

	return stats, syncErr
}

func (m *Manager) executeEngine(ctx context.Context, direction Direction) (Snapshot, error) {
	engine, err := NewEngine(ctx, m.notion, m.sheet, EngineOptions{
		DatabaseID:       m.cfg.Notion.DatabaseID,
		IDColumn:         m.cfg.GoogleSheets.IDColumn,
		RateLimiter:      NewRateLimiter(m.cfg.Sync.GetRateLimitDelay()),
		Progress:         m.progress,
		ProgressInterval: m.cfg.Sync.ProgressInterval,
	})
	if err != nil {
		return Snapshot{}, err
	}

	switch direction {
	case DirectionNotionToSheets:
		err = engine.SyncNotionToSheets(ctx)
	case DirectionSheetsToNotion:
		err = engine.SyncSheetsToNotion(ctx)
	default:
		return Snapshot{}, fmt.Errorf("unknown sync direction %q", direction)
	}

	return engine.Stats(), err
}

// Status reports "idle" or "running".
func (m *Manager) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// LastStats returns the counters of the most recent finished run.
func (m *Manager) LastStats() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStats
}
