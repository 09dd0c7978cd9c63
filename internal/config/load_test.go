package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
notion:
  api_key: secret
  database_id: db1
google_sheets:
  spreadsheet_id: sheet1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "2022-06-28", cfg.Notion.APIVersion)
	assert.Equal(t, "https://api.notion.com", cfg.Notion.BaseURL)
	assert.Equal(t, "Notion Page ID", cfg.GoogleSheets.IDColumn)
	assert.Equal(t, "Sheet1", cfg.GoogleSheets.SheetName)
	assert.Equal(t, 100*time.Millisecond, cfg.Sync.GetRateLimitDelay())
	assert.Equal(t, 25, cfg.Sync.ProgressInterval)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
notion:
  api_key: secret
  database_id: db1
google_sheets:
  spreadsheet_id: sheet1
  notion_id_column: "Page Ref"
sync:
  rate_limit_delay: 250ms
scheduler:
  enabled: true
  interval: "@every 1h"
  direction: sheets_to_notion
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Page Ref", cfg.GoogleSheets.IDColumn)
	assert.Equal(t, 250*time.Millisecond, cfg.Sync.GetRateLimitDelay())
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "sheets_to_notion", cfg.Scheduler.Direction)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	path := writeConfig(t, `
google_sheets:
  spreadsheet_id: sheet1
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion.api_key")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
