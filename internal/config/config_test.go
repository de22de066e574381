package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	errs "github.com/edgard/thanksbot/internal/errors"
)

// clearEnv blanks every variable the loader reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvPrefix + "_TELEGRAM_TOKEN",
		LegacyTokenEnv,
		EnvPrefix + "_LOG_LEVEL",
		EnvPrefix + "_DATABASE_PATH",
		EnvPrefix + "_DATABASE_TIMEZONE",
		EnvPrefix + "_TELEGRAM_ADMIN_ID",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingTokenIsConfigError(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errs.HasCode(err, errs.CodeConfig) {
		t.Fatalf("Load() error = %v, want config error", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPrefix+"_TELEGRAM_TOKEN", "123456:token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Telegram.Token != "123456:token" {
		t.Errorf("Token = %q, want value from environment", cfg.Telegram.Token)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, DefaultDBPath)
	}
	if cfg.Messages != DefaultMessages {
		t.Errorf("Messages = %+v, want defaults", cfg.Messages)
	}
	if got := cfg.Scheduler.Tasks["sql_maintenance"]; got != DefaultTasks["sql_maintenance"] {
		t.Errorf("sql_maintenance task = %+v, want %+v", got, DefaultTasks["sql_maintenance"])
	}
	if got := cfg.Scheduler.Tasks["daily_report"]; got.Enabled {
		t.Errorf("daily_report task should be disabled by default, got %+v", got)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
	if cfg.StatsRestricted() {
		t.Error("StatsRestricted() should be false by default")
	}
}

func TestLoadLegacyTokenVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv(LegacyTokenEnv, "legacy-token")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Telegram.Token != "legacy-token" {
		t.Errorf("Token = %q, want %q", cfg.Telegram.Token, "legacy-token")
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
log:
  level: debug
  json: true
telegram:
  token: file-token
  admin_id: 77
  stats_admin_only: true
database:
  path: /tmp/thanks-test.db
  timezone: Europe/Moscow
messages:
  welcome: "Hello there"
scheduler:
  tasks:
    daily_report:
      enabled: true
`)
	t.Setenv(EnvPrefix+"_TELEGRAM_TOKEN", "env-token")
	t.Setenv(EnvPrefix+"_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Telegram.Token != "env-token" {
		t.Errorf("Token = %q, environment should override file", cfg.Telegram.Token)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if !cfg.Log.JSON {
		t.Error("Log.JSON should be true")
	}
	if cfg.Telegram.AdminID != 77 || !cfg.StatsRestricted() {
		t.Errorf("admin settings = (%d, %v), want (77, restricted)", cfg.Telegram.AdminID, cfg.StatsRestricted())
	}
	if !cfg.IsAdmin(77) || cfg.IsAdmin(78) {
		t.Error("IsAdmin should only match 77")
	}
	if cfg.Messages.Welcome != "Hello there" {
		t.Errorf("Messages.Welcome = %q, want file value", cfg.Messages.Welcome)
	}
	if cfg.Messages.MissingBody != DefaultMessages.MissingBody {
		t.Errorf("Messages.MissingBody = %q, want default", cfg.Messages.MissingBody)
	}
	if cfg.Location().String() != "Europe/Moscow" {
		t.Errorf("Location() = %v, want Europe/Moscow", cfg.Location())
	}

	report := cfg.Scheduler.Tasks["daily_report"]
	if !report.Enabled || report.Schedule != DefaultDailyReportSchedule {
		t.Errorf("daily_report = %+v, want enabled with default schedule", report)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown log level", body: "telegram:\n  token: x\nlog:\n  level: verbose\n"},
		{name: "unknown timezone", body: "telegram:\n  token: x\ndatabase:\n  timezone: Mars/Olympus\n"},
		{name: "empty database path", body: "telegram:\n  token: x\ndatabase:\n  path: \"\"\n"},
		{name: "enabled task without schedule", body: "telegram:\n  token: x\nscheduler:\n  tasks:\n    nightly:\n      enabled: true\n"},
		{name: "malformed yaml", body: "telegram: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			if !errs.HasCode(err, errs.CodeConfig) {
				t.Fatalf("Load() error = %v, want config error", err)
			}
		})
	}
}

func TestLoadOfflineDoesNotRequireToken(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadOffline(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOffline() error: %v", err)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %q, want default", cfg.Database.Path)
	}

	if _, err := LoadOffline(writeConfig(t, "log:\n  level: loud\n")); !errs.HasCode(err, errs.CodeConfig) {
		t.Fatalf("LoadOffline() should still validate other fields, got %v", err)
	}
}
