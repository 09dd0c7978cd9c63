package config

import (
	"time"
)

type Config struct {
	Notion       NotionConfig    `mapstructure:"notion"`
	GoogleSheets SheetsConfig    `mapstructure:"google_sheets"`
	Sync         SyncConfig      `mapstructure:"sync"`
	StateStorage StateStorage    `mapstructure:"state_storage"`
	Scheduler    SchedulerConfig `mapstructure:"scheduler"`
	Server       ServerConfig    `mapstructure:"server"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

type NotionConfig struct {
	APIKey     string `mapstructure:"api_key"`
	DatabaseID string `mapstructure:"database_id"`
	APIVersion string `mapstructure:"api_version"`
	BaseURL    string `mapstructure:"base_url"`
}

type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	SheetName       string `mapstructure:"sheet_name"`
	IDColumn        string `mapstructure:"notion_id_column"`
}

type SyncConfig struct {
	RateLimitDelay   string `mapstructure:"rate_limit_delay"`
	ProgressInterval int    `mapstructure:"progress_interval"`
}

func (s SyncConfig) GetRateLimitDelay() time.Duration {
	d, _ := time.ParseDuration(s.RateLimitDelay)
	return d
}

type StateStorage struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type SchedulerConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Interval  string `mapstructure:"interval"`
	Direction string `mapstructure:"direction"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	AuthToken    string   `mapstructure:"auth_token"`
	ReadTimeout  string   `mapstructure:"read_timeout"`
	WriteTimeout string   `mapstructure:"write_timeout"`
	CorsOrigins  []string `mapstructure:"cors_origins"`
}

func (s ServerConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

func (s ServerConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(s.WriteTimeout)
	return d
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
