// Package database provides database setup, models, and data access layer (Store).
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	errs "github.com/edgard/thanksbot/internal/errors"
	"github.com/edgard/thanksbot/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// NewDB opens the SQLite database at dbPath, initializes the schema and
// returns the connection pool. Any failure is reported as a SchemaError.
func NewDB(dbPath string) (*sqlx.DB, error) {
	if dbPath == "" {
		return nil, errs.NewSchemaError("database path is empty", nil)
	}

	if dir := filepath.Dir(ExtractDBNameFromPath(dbPath)); dir != "." && !isMemoryPath(dbPath) {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errs.NewSchemaError("failed to create database directory", err)
		}
	}

	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, errs.NewSchemaError("failed to connect to database", err)
	}

	// SQLite doesn't support concurrent writes, so max open conns = 1
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := InitSchema(db.DB); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database after schema failure", "error", closeErr)
		}
		return nil, err
	}

	slog.Info("Database connected and schema ready", "path", dbPath)
	return db, nil
}

// CloseDB closes the database connection pool.
func CloseDB(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("Error closing database connection", "error", err)
	} else {
		slog.Info("Database connection closed successfully.")
	}
}

// InitSchema ensures the thanks_messages table and its indexes exist by
// applying the embedded migrations. It is safe to call on every start.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errs.NewSchemaError("database connection is nil, cannot initialize schema", nil)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errs.NewSchemaError("failed to create embed source driver instance", err)
	}

	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return errs.NewSchemaError("failed to create sqlite migration driver", err)
	}

	// The migrator is not closed: closing it would close db as well.
	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return errs.NewSchemaError("failed to create migrate instance", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("Database schema is up to date.")
			return nil
		}
		return errs.NewSchemaError("failed to apply schema migrations", err)
	}

	version, _, err := migrator.Version()
	if err != nil {
		return errs.NewSchemaError("failed to read schema version", err)
	}
	slog.Info("Database schema initialized.", "version", version)
	return nil
}

// ExtractDBNameFromPath extracts the database file path from a possibly URL-formatted path.
// This handles both simple file paths and paths with URL-style encoding.
func ExtractDBNameFromPath(path string) string {
	path = strings.TrimPrefix(path, "file:")

	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}

	return path
}

func isMemoryPath(path string) bool {
	name := ExtractDBNameFromPath(path)
	return name == ":memory:" || strings.Contains(path, "mode=memory")
}

// Layouts used to write message_date and created_at. Both parse back into
// time.Time through the driver's DATE/TIMESTAMP column handling.
const (
	dateLayout      = time.DateOnly
	timestampLayout = "2006-01-02 15:04:05.999999999-07:00"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func validateLength(field, value string, limit int) error {
	if n := len([]rune(value)); n > limit {
		return fmt.Errorf("%s is %d characters long, limit is %d", field, n, limit)
	}
	return nil
}
