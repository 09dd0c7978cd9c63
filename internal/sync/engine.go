package sync

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"notion-sheets-sync/internal/codec"
	"notion-sheets-sync/internal/logger"
	"notion-sheets-sync/internal/notion"
)

// NotionAPI is the document-store surface the engine drives.
type NotionAPI interface {
	FetchSchema(ctx context.Context, databaseID string) (*notion.Schema, error)
	QueryDatabase(ctx context.Context, databaseID, startCursor string) (*notion.QueryResponse, error)
	CreatePage(ctx context.Context, databaseID string, props notion.PropertyMap) (string, error)
	UpdatePage(ctx context.Context, pageID string, props notion.PropertyMap) error
}

// Sheet is the tabular-store surface the engine drives. Rows and
// columns are 1-based.
type Sheet interface {
	GetAllValues(ctx context.Context) ([][]string, error)
	UpdateRange(ctx context.Context, row, col int, values [][]string) error
	AppendRows(ctx context.Context, values [][]string) error
	UpdateCell(ctx context.Context, row, col int, value string) error
	Clear(ctx context.Context) error
}

// Engine reconciles one Notion database with one sheet. An Engine is
// built per run and not reused: the schema it fetches at construction
// stays authoritative for the whole run even if the remote schema
// changes underneath it.
type Engine struct {
	notion     NotionAPI
	sheet      Sheet
	schema     *notion.Schema
	databaseID string
	idColumn   string
	limiter    *RateLimiter
	stats      *Stats
	reporter   *ProgressReporter
}

// EngineOptions bundles the per-run knobs.
type EngineOptions struct {
	DatabaseID       string
	IDColumn         string
	RateLimiter      *RateLimiter
	Progress         ProgressFunc
	ProgressInterval int
}

// NewEngine fetches the database schema once and fixes it for the
// engine's lifetime.
func NewEngine(ctx context.Context, api NotionAPI, sheet Sheet, opts EngineOptions) (*Engine, error) {
	schema, err := api.FetchSchema(ctx, opts.DatabaseID)
	if err != nil {
		return nil, &SchemaFetchError{DatabaseID: opts.DatabaseID, Err: err}
	}

	limiter := opts.RateLimiter
	if limiter == nil {
		limiter = NewRateLimiter(0)
	}

	return &Engine{
		notion:     api,
		sheet:      sheet,
		schema:     schema,
		databaseID: opts.DatabaseID,
		idColumn:   opts.IDColumn,
		limiter:    limiter,
		stats:      NewStats(),
		reporter:   NewProgressReporter(opts.Progress, opts.ProgressInterval),
	}, nil
}

// Stats returns the engine's counters.
func (e *Engine) Stats() Snapshot {
	return e.stats.Snapshot()
}

type rowUpdate struct {
	rowNum int
	cells  []string
}

type cellWrite struct {
	rowNum int
	colNum int
	value  string
}

// SyncNotionToSheets mirrors every database page into the sheet:
// pages whose id already appears in the id column update their row in
// place, the rest are appended as new rows. Classification finishes
// before any write so sheet positions cannot shift mid-loop.
func (e *Engine) SyncNotionToSheets(ctx context.Context) error {
	e.stats.Reset()
	e.reporter.Report("Fetching Notion database pages...")

	pages, err := e.fetchAllPages(ctx)
	if err != nil {
		return err
	}

	header := expectedHeader(e.schema.Names(), e.idColumn)
	grid, err := e.sheet.GetAllValues(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(grid) == 0 {
		return ErrEmptySheet
	}
	if err := verifyHeader(grid[0], header); err != nil {
		return err
	}

	idIdx := len(header) - 1
	index := buildRowIndex(grid[1:], idIdx)

	e.reporter.Report(fmt.Sprintf("Reconciling %d pages against %d sheet rows...", len(pages), len(grid)-1))

	var updates []rowUpdate
	var appends [][]string

	for i, page := range pages {
		cells, err := e.formatPage(page, header)
		if err != nil {
			logger.Log.Error("Error processing Notion page",
				zap.String("page_id", page.ID), zap.Error(err))
			e.stats.AddErrors(1)
			continue
		}

		if rowNum, ok := index[page.ID]; ok {
			updates = append(updates, rowUpdate{rowNum: rowNum, cells: cells})
			e.stats.AddUpdated(1)
		} else {
			appends = append(appends, cells)
			e.stats.AddCreated(1)
		}
		e.reporter.Item("Classified pages", i+1, len(pages))
	}

	e.reporter.Report(fmt.Sprintf("Writing %d row updates...", len(updates)))
	for _, u := range updates {
		e.limiter.Wait()
		if err := e.sheet.UpdateRange(ctx, u.rowNum, 1, [][]string{u.cells}); err != nil {
			logger.Log.Error("Failed to update sheet row",
				zap.Int("row", u.rowNum), zap.Error(err))
			e.stats.AddUpdated(-1)
			e.stats.AddErrors(1)
		}
	}

	if len(appends) > 0 {
		e.reporter.Report(fmt.Sprintf("Appending %d new rows...", len(appends)))
		e.limiter.Wait()
		if err := e.sheet.AppendRows(ctx, appends); err != nil {
			logger.Log.Error("Failed to append rows",
				zap.Int("rows", len(appends)), zap.Error(err))
			e.stats.AddCreated(-len(appends))
			e.stats.AddErrors(len(appends))
		}
	}

	e.reporter.Report("Notion → Sheets sync complete: " + e.stats.Snapshot().String())
	return nil
}

// formatPage renders one page as a sheet row aligned to the header.
// The final header column is the id column.
func (e *Engine) formatPage(page notion.Page, header []string) ([]string, error) {
	if page.ID == "" {
		return nil, fmt.Errorf("page is missing an id")
	}

	cells := make([]string, len(header))
	for i, name := range header {
		if name == e.idColumn {
			cells[i] = page.ID
			continue
		}
		if prop, ok := page.Properties[name]; ok {
			cells[i] = codec.Extract(prop)
		}
	}
	return cells, nil
}

// SyncSheetsToNotion walks the sheet's data rows in order: rows with
// an id update that page, rows without create a new page and queue a
// write-back of the assigned id. A failing row is counted and skipped;
// one malformed row must never abort a multi-hundred-row run.
func (e *Engine) SyncSheetsToNotion(ctx context.Context) error {
	e.stats.Reset()
	e.reporter.Report("Reading sheet rows...")

	grid, err := e.sheet.GetAllValues(ctx)
	if err != nil {
		return fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(grid) == 0 {
		return ErrEmptySheet
	}

	header := grid[0]
	idIdx := columnIndex(header, e.idColumn)
	if idIdx < 0 {
		return fmt.Errorf("%w: %q", ErrMissingIDColumn, e.idColumn)
	}

	dataRows := grid[1:]
	e.reporter.Report(fmt.Sprintf("Syncing %d sheet rows to Notion...", len(dataRows)))

	var writebacks []cellWrite

	for i, row := range dataRows {
		rowNum := i + 2

		props := e.buildRowProperties(row, header)

		pageID := ""
		if idIdx < len(row) {
			pageID = strings.TrimSpace(row[idIdx])
		}

		e.limiter.Wait()
		if pageID != "" {
			if err := e.notion.UpdatePage(ctx, pageID, props); err != nil {
				logger.Log.Error("Error processing sheet row",
					zap.Int("row", rowNum), zap.Error(err))
				e.stats.AddErrors(1)
				continue
			}
			e.stats.AddUpdated(1)
		} else {
			newID, err := e.notion.CreatePage(ctx, e.databaseID, props)
			if err != nil {
				logger.Log.Error("Error processing sheet row",
					zap.Int("row", rowNum), zap.Error(err))
				e.stats.AddErrors(1)
				continue
			}
			writebacks = append(writebacks, cellWrite{rowNum: rowNum, colNum: idIdx + 1, value: newID})
			e.stats.AddCreated(1)
		}
		e.reporter.Item("Synced rows", i+1, len(dataRows))
	}

	// Best effort: the Notion create already succeeded, so a failed
	// write-back is a warning, not a run error.
	if len(writebacks) > 0 {
		e.reporter.Report(fmt.Sprintf("Writing back %d new page ids...", len(writebacks)))
		for _, wb := range writebacks {
			e.limiter.Wait()
			if err := e.sheet.UpdateCell(ctx, wb.rowNum, wb.colNum, wb.value); err != nil {
				logger.Log.Warn("Failed to write page id back to sheet",
					zap.Int("row", wb.rowNum), zap.Error(err))
			}
		}
	}

	e.reporter.Report("Sheets → Notion sync complete: " + e.stats.Snapshot().String())
	return nil
}

// buildRowProperties marshals one row's cells into a write payload.
// The id column, headers absent from the schema, blank cells and cells
// the codec rejects are all skipped.
func (e *Engine) buildRowProperties(row []string, header []string) notion.PropertyMap {
	props := make(notion.PropertyMap)
	for i, name := range header {
		if name == e.idColumn || i >= len(row) {
			continue
		}
		prop, ok := e.schema.Get(name)
		if !ok {
			continue
		}
		payload, ok := codec.Build(prop, row[i])
		if !ok {
			continue
		}
		props[name] = payload
	}
	return props
}
