package sync

import (
	"errors"
	"fmt"
	"strings"
)

// Structural failures abort a directional run before any writes.
// Per-item failures never surface as errors; they are counted in the
// run's stats instead.
var (
	ErrEmptySheet      = errors.New("sheet is empty or missing headers")
	ErrMissingIDColumn = errors.New("sheet is missing the id column")
	ErrSyncRunning     = errors.New("a sync is already running")
)

// SchemaFetchError wraps a failure to read the database schema.
type SchemaFetchError struct {
	DatabaseID string
	Err        error
}

func (e *SchemaFetchError) Error() string {
	return fmt.Sprintf("failed to fetch schema for database %s: %v", e.DatabaseID, e.Err)
}

func (e *SchemaFetchError) Unwrap() error { return e.Err }

// FetchError wraps a failure during paginated page fetching. Partial
// results are discarded; a half-fetched record set must never reach
// the sheet.
type FetchError struct {
	DatabaseID string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch pages from database %s: %v", e.DatabaseID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HeaderMismatchError reports that the sheet header does not equal the
// schema-derived header. Never repaired automatically.
type HeaderMismatchError struct {
	Expected []string
	Actual   []string
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("sheet headers do not match notion properties: want [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
}
