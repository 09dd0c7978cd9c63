package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notion-sheets-sync/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.NotionConfig{
		APIKey:     "test-key",
		APIVersion: "2022-06-28",
		BaseURL:    srv.URL,
	})
}

func TestQueryDatabasePagination(t *testing.T) {
	var cursors []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/databases/db1/query", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "2022-06-28", r.Header.Get("Notion-Version"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cursors = append(cursors, body["start_cursor"])

		if body["start_cursor"] == "" {
			w.Write([]byte(`{"results": [{"id": "p1", "properties": {}}], "has_more": true, "next_cursor": "cur2"}`))
			return
		}
		w.Write([]byte(`{"results": [{"id": "p2", "properties": {}}], "has_more": false, "next_cursor": null}`))
	})

	first, err := client.QueryDatabase(context.Background(), "db1", "")
	require.NoError(t, err)
	assert.True(t, first.HasMore)
	assert.Equal(t, "cur2", first.NextCursor)
	require.Len(t, first.Results, 1)
	assert.Equal(t, "p1", first.Results[0].ID)

	second, err := client.QueryDatabase(context.Background(), "db1", first.NextCursor)
	require.NoError(t, err)
	assert.False(t, second.HasMore)
	assert.Equal(t, "p2", second.Results[0].ID)

	assert.Equal(t, []string{"", "cur2"}, cursors)
}

func TestQueryDatabaseDecodesProperties(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": "p1", "properties": {
			"Name": {"type": "title", "title": [{"plain_text": "Task"}]},
			"Done": {"type": "checkbox", "checkbox": true}
		}}], "has_more": false}`))
	})

	resp, err := client.QueryDatabase(context.Background(), "db1", "")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	props := resp.Results[0].Properties
	assert.Equal(t, TypeTitle, props["Name"].Type)
	require.Len(t, props["Name"].Title, 1)
	assert.Equal(t, "Task", props["Name"].Title[0].PlainText)
	assert.True(t, props["Done"].Checkbox)
}

func TestCreatePageReturnsID(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/pages", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		parent := body["parent"].(map[string]any)
		assert.Equal(t, "db1", parent["database_id"])

		w.Write([]byte(`{"id": "new-page-id"}`))
	})

	id, err := client.CreatePage(context.Background(), "db1", PropertyMap{
		"Name": TitleProperty("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-page-id", id)
}

func TestUpdatePage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/v1/pages/p1", r.URL.Path)
		w.Write([]byte(`{"id": "p1"}`))
	})

	err := client.UpdatePage(context.Background(), "p1", PropertyMap{})
	assert.NoError(t, err)
}

func TestAPIErrorSurfacesStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"object": "error", "status": 404}`))
	})

	_, err := client.QueryDatabase(context.Background(), "db1", "")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFetchSchema(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/databases/db1", r.URL.Path)
		w.Write([]byte(`{"properties": {
			"Name": {"type": "title", "title": {}},
			"Count": {"type": "number", "number": {}}
		}}`))
	})

	schema, err := client.FetchSchema(context.Background(), "db1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Count"}, schema.Names())
}
