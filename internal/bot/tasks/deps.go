// Package tasks implements scheduled tasks for the thanks bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/thanksbot/internal/config"
	"github.com/edgard/thanksbot/internal/database"
)

// Sender delivers reports to Telegram. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
	Sender Sender
	// Now defaults to time.Now when nil.
	Now func() time.Time
}

func (d TaskDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
