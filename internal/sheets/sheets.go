// Package sheets wraps the Google Sheets API behind the small surface
// the sync engine needs: read the full grid, write a rectangular
// block, append rows, set a single cell, clear the sheet.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"notion-sheets-sync/internal/config"
)

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
	}, nil
}

// GetAllValues returns the whole grid as strings, row 0 = header.
func (c *Client) GetAllValues(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", c.sheetName, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// UpdateRange writes a rectangular block with its top-left cell at the
// given 1-based row/column.
func (c *Client) UpdateRange(ctx context.Context, row, col int, values [][]string) error {
	rangeA1 := fmt.Sprintf("%s!%s", c.sheetName, CellA1(row, col))
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeA1, valueRange(values)).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", rangeA1, err)
	}
	return nil
}

// AppendRows appends rows after the last data row of the sheet.
func (c *Client) AppendRows(ctx context.Context, values [][]string) error {
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.sheetName, valueRange(values)).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows: %w", len(values), err)
	}
	return nil
}

// UpdateCell writes a single cell at the 1-based row/column.
func (c *Client) UpdateCell(ctx context.Context, row, col int, value string) error {
	return c.UpdateRange(ctx, row, col, [][]string{{value}})
}

// Clear removes all values from the sheet.
func (c *Client) Clear(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, c.sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet %q: %w", c.sheetName, err)
	}
	return nil
}

func valueRange(values [][]string) *sheets.ValueRange {
	rows := make([][]interface{}, 0, len(values))
	for _, r := range values {
		row := make([]interface{}, 0, len(r))
		for _, cell := range r {
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return &sheets.ValueRange{Values: rows}
}
