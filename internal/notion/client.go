package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notion-sheets-sync/internal/config"
)

// Client is a thin wrapper over the Notion REST API. It performs no
// rate limiting of its own; callers pace their requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiVersion string
}

func NewClient(cfg config.NotionConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
	}
}

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion api returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(data)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet}
	}

	return data, nil
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryDatabase fetches a single page of results. An empty cursor
// requests the first page.
func (c *Client) QueryDatabase(ctx context.Context, databaseID, startCursor string) (*QueryResponse, error) {
	payload := map[string]any{}
	if startCursor != "" {
		payload["start_cursor"] = startCursor
	}

	data, err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", payload)
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}
	return &resp, nil
}

// CreatePage creates a page under the database and returns its id.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props PropertyMap) (string, error) {
	payload := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": props,
	}

	data, err := c.do(ctx, http.MethodPost, "/v1/pages", payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	return resp.ID, nil
}

// UpdatePage patches the properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props PropertyMap) error {
	payload := map[string]any{"properties": props}
	_, err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload)
	return err
}
