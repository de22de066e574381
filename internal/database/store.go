package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	errs "github.com/edgard/thanksbot/internal/errors"
	"github.com/edgard/thanksbot/internal/thanks"
)

// Store defines the interface for database operations.
// Every method returns a StoreError on failure; callers treat it as a
// per-request failure, never retried.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveThanks appends a thanks message. It stamps MessageDate and
	// CreatedAt and sets the generated ID on message.
	SaveThanks(ctx context.Context, message *ThanksMessage) error

	// GetThanks retrieves a thanks message by ID. Returns nil, nil if not found.
	GetThanks(ctx context.Context, id int64) (*ThanksMessage, error)

	// GetStats returns the total message count and the top recipients.
	GetStats(ctx context.Context) (*Stats, error)

	// GetStatsForDate returns the same aggregate restricted to one acceptance date.
	GetStatsForDate(ctx context.Context, date time.Time) (*Stats, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// StoreOption configures a Store created by NewStore.
type StoreOption func(*sqlxStore)

// WithClock replaces the time source used to stamp accepted messages.
func WithClock(now func() time.Time) StoreOption {
	return func(s *sqlxStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone whose calendar date becomes message_date.
// Defaults to UTC.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *sqlxStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger, opts ...StoreOption) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    time.Now,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errs.NewStoreError("failed to ping database", err)
	}
	return nil
}

// SaveThanks validates and inserts a thanks message in a single statement.
func (s *sqlxStore) SaveThanks(ctx context.Context, message *ThanksMessage) error {
	if err := validateThanks(message); err != nil {
		return errs.NewStoreError("invalid thanks message", err)
	}

	now := s.now()
	local := now.In(s.loc)
	message.MessageDate = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	message.CreatedAt = now.UTC()

	query := `
        INSERT INTO thanks_messages (sender_id, sender_username, recipient_username, message_text, message_date, created_at)
        VALUES (?, ?, ?, ?, ?, ?);
    `

	result, err := s.db.ExecContext(ctx, query,
		message.SenderID,
		message.SenderUsername,
		message.RecipientUsername,
		message.MessageText,
		formatDate(message.MessageDate),
		formatTimestamp(message.CreatedAt),
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving thanks message",
			"sender_id", message.SenderID, "recipient", message.RecipientUsername, "error", err)
		return errs.NewStoreError(fmt.Sprintf("failed to save thanks message from sender %d", message.SenderID), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		s.logger.ErrorContext(ctx, "Could not retrieve last insert ID after saving thanks message",
			"sender_id", message.SenderID, "error", err)
		return errs.NewStoreError("failed to read inserted thanks message id", err)
	}
	message.ID = id

	s.logger.DebugContext(ctx, "Thanks message saved successfully",
		"sender_id", message.SenderID, "recipient", message.RecipientUsername, "message_id", message.ID)
	return nil
}

func validateThanks(message *ThanksMessage) error {
	if message == nil {
		return errors.New("cannot save nil message")
	}
	if message.SenderID == 0 {
		return errors.New("message must have a non-zero sender_id")
	}
	if !thanks.IsHandle(message.RecipientUsername) {
		return fmt.Errorf("recipient %q is not an @handle", message.RecipientUsername)
	}
	if err := validateLength("recipient_username", message.RecipientUsername, MaxHandleLength); err != nil {
		return err
	}
	if message.SenderUsername.Valid {
		if err := validateLength("sender_username", message.SenderUsername.String, MaxHandleLength); err != nil {
			return err
		}
	}
	message.MessageText = strings.TrimSpace(message.MessageText)
	if message.MessageText == "" {
		return errors.New("message must have non-empty text")
	}
	return nil
}

// GetThanks retrieves a thanks message by ID. Returns nil, nil if not found.
func (s *sqlxStore) GetThanks(ctx context.Context, id int64) (*ThanksMessage, error) {
	var message ThanksMessage
	query := `SELECT id, sender_id, sender_username, recipient_username, message_text, message_date, created_at
	          FROM thanks_messages WHERE id = ?`

	err := s.db.GetContext(ctx, &message, query, id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No thanks message found", "message_id", id)
		return nil, nil

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting thanks message by ID", "message_id", id, "error", err)
		return nil, errs.NewStoreError(fmt.Sprintf("failed to get thanks message %d", id), err)
	}

	return &message, nil
}

// GetStats computes the total row count and the top recipients, ranked by
// message count descending and then by handle ascending.
func (s *sqlxStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{TopRecipients: []RecipientCount{}}

	if err := s.db.GetContext(ctx, &stats.Total, `SELECT COUNT(*) FROM thanks_messages`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting thanks messages", "error", err)
		return nil, errs.NewStoreError("failed to count thanks messages", err)
	}

	query := `
        SELECT recipient_username, COUNT(*) AS message_count
        FROM thanks_messages
        GROUP BY recipient_username
        ORDER BY message_count DESC, recipient_username ASC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &stats.TopRecipients, query, TopRecipientsLimit); err != nil {
		s.logger.ErrorContext(ctx, "Error ranking recipients", "error", err)
		return nil, errs.NewStoreError("failed to rank recipients", err)
	}

	s.logger.DebugContext(ctx, "Computed thanks stats", "total", stats.Total, "recipients", len(stats.TopRecipients))
	return stats, nil
}

// GetStatsForDate computes the same aggregate as GetStats for messages
// accepted on the calendar date of date.
func (s *sqlxStore) GetStatsForDate(ctx context.Context, date time.Time) (*Stats, error) {
	day := formatDate(date)
	stats := &Stats{TopRecipients: []RecipientCount{}}

	err := s.db.GetContext(ctx, &stats.Total,
		`SELECT COUNT(*) FROM thanks_messages WHERE message_date = ?`, day)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error counting thanks messages for date", "date", day, "error", err)
		return nil, errs.NewStoreError("failed to count thanks messages for "+day, err)
	}

	query := `
        SELECT recipient_username, COUNT(*) AS message_count
        FROM thanks_messages
        WHERE message_date = ?
        GROUP BY recipient_username
        ORDER BY message_count DESC, recipient_username ASC
        LIMIT ?;
    `
	if err := s.db.SelectContext(ctx, &stats.TopRecipients, query, day, TopRecipientsLimit); err != nil {
		s.logger.ErrorContext(ctx, "Error ranking recipients for date", "date", day, "error", err)
		return nil, errs.NewStoreError("failed to rank recipients for "+day, err)
	}

	return stats, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return errs.NewStoreError("database maintenance (VACUUM) timed out", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return errs.NewStoreError("failed to execute VACUUM", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
