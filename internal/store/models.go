package store

import (
	"database/sql"
	"time"
)

type SyncRun struct {
	ID           string         `db:"id"`
	Direction    string         `db:"direction"`
	StartedAt    time.Time      `db:"started_at"`
	CompletedAt  sql.NullTime   `db:"completed_at"`
	Created      int            `db:"created_count"`
	Updated      int            `db:"updated_count"`
	Errors       int            `db:"error_count"`
	Status       string         `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
}
