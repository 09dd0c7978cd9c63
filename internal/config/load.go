package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads the YAML config file at path and applies defaults.
// Every key can be overridden through the environment, e.g.
// NSS_NOTION_API_KEY overrides notion.api_key.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("notion.api_version", "2022-06-28")
	v.SetDefault("notion.base_url", "https://api.notion.com")
	v.SetDefault("google_sheets.credentials_file", "creds.json")
	v.SetDefault("google_sheets.sheet_name", "Sheet1")
	v.SetDefault("google_sheets.notion_id_column", "Notion Page ID")
	v.SetDefault("sync.rate_limit_delay", "100ms")
	v.SetDefault("sync.progress_interval", 25)
	v.SetDefault("scheduler.direction", "notion_to_sheets")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("NSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Notion.APIKey == "" {
		return nil, fmt.Errorf("notion.api_key is required")
	}
	if cfg.Notion.DatabaseID == "" {
		return nil, fmt.Errorf("notion.database_id is required")
	}
	if cfg.GoogleSheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("google_sheets.spreadsheet_id is required")
	}

	return &cfg, nil
}
