package config

import (
	"github.com/go-playground/validator/v10"

	errs "github.com/edgard/thanksbot/internal/errors"
)

// Validate checks the complete configuration. A missing bot token or any
// malformed value is reported as a ConfigError.
func (c *Config) Validate() error {
	return c.validate()
}

// validate runs the struct validation, skipping the namespaced fields in
// except (e.g. "Telegram.Token").
func (c *Config) validate(except ...string) error {
	v := validator.New(validator.WithRequiredStructEnabled())

	var err error
	if len(except) > 0 {
		err = v.StructExcept(c, except...)
	} else {
		err = v.Struct(c)
	}
	if err != nil {
		return errs.NewConfigError("invalid configuration", err)
	}
	return nil
}

// IsAdmin reports whether userID is the configured admin.
func (c *Config) IsAdmin(userID int64) bool {
	return c.Telegram.AdminID != 0 && userID == c.Telegram.AdminID
}
