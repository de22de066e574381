// Package telegram handles the setup and registration of Telegram bot handlers.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/thanksbot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", maskToken(token))
	return b, nil
}

// maskToken keeps at most the first eight characters of token.
func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return "***"
	}
	return token[:visible] + "..."
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// RegisterHandlers registers command handlers with the Telegram bot instance,
// applying each handler's middleware.
func RegisterHandlers(b *bot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	log.Info("Registering Telegram handlers...", "count", len(registeredHandlers))

	for _, regHandler := range registeredHandlers {
		if regHandler.Handler == nil {
			log.Warn("Skipping registration for nil handler", "pattern", regHandler.Pattern)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		b.RegisterHandler(regHandler.HandlerType, regHandler.Pattern, regHandler.MatchType, finalHandler)
		log.Debug("Registered handler", "pattern", regHandler.Pattern, "match_type", regHandler.MatchType, "middleware_count", len(regHandler.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", len(registeredHandlers))
	return nil
}

// BotCommands returns the command menu for registeredHandlers, sorted by name.
// Handlers without a description are left out.
func BotCommands(registeredHandlers map[string]handlers.RegisteredHandler) []models.BotCommand {
	commands := make([]models.BotCommand, 0, len(registeredHandlers))
	for _, regHandler := range registeredHandlers {
		if regHandler.Description == "" {
			continue
		}
		commands = append(commands, models.BotCommand{
			Command:     regHandler.Pattern,
			Description: regHandler.Description,
		})
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Command < commands[j].Command
	})
	return commands
}

// PublishCommands sets the bot's command menu. Failure is not fatal to the
// caller; the bot works without a menu.
func PublishCommands(ctx context.Context, b *bot.Bot, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	commands := BotCommands(registeredHandlers)
	if len(commands) == 0 {
		return nil
	}

	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to publish bot commands: %w", err)
	}
	logger.Info("Published bot command menu", "count", len(commands))
	return nil
}
