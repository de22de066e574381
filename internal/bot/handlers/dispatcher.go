package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/thanksbot/internal/database"
	errs "github.com/edgard/thanksbot/internal/errors"
	"github.com/edgard/thanksbot/internal/thanks"
)

// Commands recognized as control events instead of thanks messages.
const (
	CommandStart = "start"
	CommandHelp  = "help"
	CommandStats = "stats"
)

// Event is the part of an inbound Telegram message the bot reads.
type Event struct {
	ChatID         int64
	MessageID      int
	SenderID       int64
	SenderUsername string
	Text           string
}

// Reply is the single outbound message produced for an Event.
type Reply struct {
	Text      string
	ParseMode models.ParseMode
}

// replyFunc turns one event into exactly one reply.
type replyFunc func(ctx context.Context, ev Event) Reply

// Dispatcher routes inbound events to the welcome, stats or thanks flow.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	deps  HandlerDeps
	stats replyFunc
}

// NewDispatcher creates a Dispatcher. When the config restricts /stats to
// the admin, the stats flow is wrapped with AdminOnly.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	d := &Dispatcher{deps: deps}
	d.stats = d.Stats
	if deps.Config.StatsRestricted() {
		d.stats = AdminOnly(deps, d.Stats)
	}
	return d
}

// Dispatch handles any text event: commands go to their flow, everything
// else is treated as a candidate thanks message.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) Reply {
	switch ParseCommand(ev.Text) {
	case CommandStart, CommandHelp:
		return d.Welcome(ctx, ev)
	case CommandStats:
		return d.stats(ctx, ev)
	default:
		return d.Thanks(ctx, ev)
	}
}

// Welcome returns the onboarding message. It has no side effects.
func (d *Dispatcher) Welcome(ctx context.Context, ev Event) Reply {
	d.log("welcome").InfoContext(ctx, "Sending welcome message", "chat_id", ev.ChatID, "user_id", ev.SenderID)
	return Reply{Text: d.deps.Config.Messages.Welcome, ParseMode: models.ParseModeHTML}
}

// Thanks parses ev.Text as "@handle text" and persists it.
func (d *Dispatcher) Thanks(ctx context.Context, ev Event) Reply {
	log := d.log("thanks").With("chat_id", ev.ChatID, "user_id", ev.SenderID)
	msgs := d.deps.Config.Messages

	parsed, err := thanks.Parse(ev.Text)
	switch {
	case errors.Is(err, thanks.ErrMissingBody):
		log.DebugContext(ctx, "Rejected message without body")
		return Reply{Text: msgs.MissingBody}
	case errors.Is(err, thanks.ErrInvalidRecipientFormat):
		log.DebugContext(ctx, "Rejected message without @handle")
		return Reply{Text: msgs.InvalidRecipient}
	case err != nil:
		return d.unexpected(ctx, "thanks", err)
	}

	message := &database.ThanksMessage{
		SenderID:          ev.SenderID,
		SenderUsername:    nullString(ev.SenderUsername),
		RecipientUsername: parsed.Recipient,
		MessageText:       parsed.Body,
	}
	if err := d.deps.Store.SaveThanks(ctx, message); err != nil {
		if errs.HasCode(err, errs.CodeStore) {
			log.ErrorContext(ctx, "Thanks message not saved", "recipient", parsed.Recipient, "error", err)
			return Reply{Text: msgs.StoreError}
		}
		return d.unexpected(ctx, "thanks", err)
	}

	log.InfoContext(ctx, "Accepted thanks message", "message_id", message.ID, "recipient", message.RecipientUsername)
	return Reply{
		Text:      FormatAccepted(msgs.Accepted, message),
		ParseMode: models.ParseModeHTML,
	}
}

// Stats reports the total message count and the top recipients.
func (d *Dispatcher) Stats(ctx context.Context, ev Event) Reply {
	log := d.log("stats").With("chat_id", ev.ChatID, "user_id", ev.SenderID)
	msgs := d.deps.Config.Messages

	stats, err := d.deps.Store.GetStats(ctx)
	if err != nil {
		if errs.HasCode(err, errs.CodeStore) {
			log.ErrorContext(ctx, "Failed to compute stats", "error", err)
			return Reply{Text: msgs.StatsUnavailable}
		}
		return d.unexpected(ctx, "stats", err)
	}

	log.InfoContext(ctx, "Sending stats", "total", stats.Total, "recipients", len(stats.TopRecipients))
	return Reply{Text: FormatStats(msgs.StatsHeader, msgs.StatsEmpty, stats)}
}

// unexpected converts an error outside the known taxonomy into the
// generic notice.
func (d *Dispatcher) unexpected(ctx context.Context, handler string, err error) Reply {
	d.log(handler).ErrorContext(ctx, "Unexpected error while processing message",
		"error", err, "error_code", errs.Code(err))
	return Reply{Text: d.deps.Config.Messages.GeneralError}
}

func (d *Dispatcher) log(handler string) *slog.Logger {
	return d.deps.Logger.With("handler", handler)
}

// ParseCommand returns the lower-cased command name if text starts with a
// bot command ("/stats", "/Start@my_bot extra"), or "" otherwise.
func ParseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	name := strings.TrimPrefix(fields[0], "/")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
