// Package config manages application configuration from a .env file,
// an optional config.yaml, THANKSBOT_* environment variables and default
// values.
package config

import "time"

// Config defines the application configuration. Values can be set via
// environment variables prefixed with THANKSBOT_ (e.g.
// THANKSBOT_TELEGRAM_TOKEN) or through config.yaml.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds bot credentials and chat identities.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// AdminID is the only user allowed to run /stats when StatsAdminOnly is set.
	AdminID        int64 `mapstructure:"admin_id"        validate:"gte=0"`
	StatsAdminOnly bool  `mapstructure:"stats_admin_only"`
	// ReportChatID receives the daily report. Zero disables delivery.
	ReportChatID int64 `mapstructure:"report_chat_id"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
	// Timezone decides which calendar date an accepted message belongs to.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`
}

// MessagesConfig holds every reply template. Placeholders in braces are
// substituted by the handlers.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"            validate:"required"`
	MissingBody       string `mapstructure:"missing_body"       validate:"required"`
	InvalidRecipient  string `mapstructure:"invalid_recipient"  validate:"required"`
	Accepted          string `mapstructure:"accepted"           validate:"required"` // {recipient} {message} {date}
	StoreError        string `mapstructure:"store_error"        validate:"required"`
	StatsHeader       string `mapstructure:"stats_header"       validate:"required"` // {total}
	StatsEmpty        string `mapstructure:"stats_empty"        validate:"required"`
	StatsUnavailable  string `mapstructure:"stats_unavailable"  validate:"required"`
	GeneralError      string `mapstructure:"general_error"      validate:"required"`
	NotAuthorized     string `mapstructure:"not_authorized"     validate:"required"`
	DailyReportHeader string `mapstructure:"daily_report_header" validate:"required"` // {date}
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task. Schedule is a six-field cron
// expression (seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Database.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StatsRestricted reports whether /stats is limited to the admin.
func (c *Config) StatsRestricted() bool {
	return c.Telegram.StatsAdminOnly && c.Telegram.AdminID != 0
}
