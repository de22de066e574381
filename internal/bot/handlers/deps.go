package handlers

import (
	"log/slog"

	"github.com/edgard/thanksbot/internal/config"
	"github.com/edgard/thanksbot/internal/database"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
}
