package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"notion-sheets-sync/internal/config"
	"notion-sheets-sync/internal/logger"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(cfg config.StateStorage) (*MySQLStore, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql connection: %w", err)
	}

	// Retry loop for Ping
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		logger.Log.Info("Waiting for state DB...", zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(1 * time.Second)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to ping mysql after retries: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	s := &MySQLStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *MySQLStore) ensureSchema() error {
	query := `CREATE TABLE IF NOT EXISTS sync_runs (
		id VARCHAR(36) PRIMARY KEY,
		direction VARCHAR(32) NOT NULL,
		started_at DATETIME NOT NULL,
		completed_at DATETIME NULL,
		created_count INT NOT NULL DEFAULT 0,
		updated_count INT NOT NULL DEFAULT 0,
		error_count INT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL,
		error_message TEXT NULL,
		INDEX idx_started_at (started_at)
	)`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create sync_runs table: %w", err)
	}
	return nil
}

func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func (s *MySQLStore) CreateSyncRun(ctx context.Context, run *SyncRun) error {
	query := `INSERT INTO sync_runs (id, direction, started_at, created_count, updated_count, error_count, status)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		run.Direction,
		run.StartedAt,
		run.Created,
		run.Updated,
		run.Errors,
		run.Status,
	)

	return err
}

func (s *MySQLStore) CompleteSyncRun(ctx context.Context, run *SyncRun) error {
	query := `UPDATE sync_runs SET completed_at = ?, created_count = ?, updated_count = ?, error_count = ?, status = ?, error_message = ? WHERE id = ?`

	_, err := s.db.ExecContext(ctx, query,
		run.CompletedAt,
		run.Created,
		run.Updated,
		run.Errors,
		run.Status,
		run.ErrorMessage,
		run.ID,
	)

	return err
}

func (s *MySQLStore) ListSyncRuns(ctx context.Context, limit, offset int) ([]*SyncRun, error) {
	query := `SELECT id, direction, started_at, completed_at, created_count, updated_count, error_count, status, error_message
			  FROM sync_runs ORDER BY started_at DESC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*SyncRun
	for rows.Next() {
		var r SyncRun
		err := rows.Scan(
			&r.ID,
			&r.Direction,
			&r.StartedAt,
			&r.CompletedAt,
			&r.Created,
			&r.Updated,
			&r.Errors,
			&r.Status,
			&r.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}

	return runs, rows.Err()
}

func (s *MySQLStore) GetLastSyncRun(ctx context.Context) (*SyncRun, error) {
	query := `SELECT id, direction, started_at, completed_at, created_count, updated_count, error_count, status, error_message
			  FROM sync_runs ORDER BY started_at DESC LIMIT 1`

	row := s.db.QueryRowContext(ctx, query)

	var r SyncRun
	err := row.Scan(
		&r.ID,
		&r.Direction,
		&r.StartedAt,
		&r.CompletedAt,
		&r.Created,
		&r.Updated,
		&r.Errors,
		&r.Status,
		&r.ErrorMessage,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &r, nil
}
