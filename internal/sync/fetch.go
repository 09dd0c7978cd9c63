package sync

import (
	"context"

	"notion-sheets-sync/internal/notion"
)

// fetchAllPages follows the query cursor until the database reports no
// more data, pacing each call through the rate limiter. Any transport
// failure discards the partial result and aborts the run.
func (e *Engine) fetchAllPages(ctx context.Context) ([]notion.Page, error) {
	var pages []notion.Page
	cursor := ""

	for {
		e.limiter.Wait()
		resp, err := e.notion.QueryDatabase(ctx, e.databaseID, cursor)
		if err != nil {
			return nil, &FetchError{DatabaseID: e.databaseID, Err: err}
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}
