package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	errs "github.com/edgard/thanksbot/internal/errors"
)

// EnvPrefix prefixes every environment variable the bot reads.
const EnvPrefix = "THANKSBOT"

// LegacyTokenEnv is also accepted for the bot token.
const LegacyTokenEnv = "TELEGRAM_BOT_TOKEN"

// Load loads and validates configuration from:
// 1. Default values
// 2. .env file (exported into the process environment, optional)
// 3. config file at path, or ./config.yaml when path is empty (optional)
// 4. THANKSBOT_* environment variables
//
// Every failure is returned as a ConfigError.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOffline is Load for commands that never talk to Telegram: the bot
// token is not required.
func LoadOffline(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate("Telegram.Token"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewConfigError("failed to load .env file", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("telegram.token", EnvPrefix+"_TELEGRAM_TOKEN", LegacyTokenEnv); err != nil {
		return nil, errs.NewConfigError("failed to bind token environment variables", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewConfigError("failed to read config file", err)
		}
		slog.Debug("Config file not found, using defaults and environment", "path", path)
	} else {
		slog.Debug("Config file loaded", "path", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}
	return cfg, nil
}

// setDefaults registers default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}
}
