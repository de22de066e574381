package main

import (
	"context"
	"errors"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/cobra"

	"github.com/edgard/thanksbot/internal/bot"
	"github.com/edgard/thanksbot/internal/bot/handlers"
	"github.com/edgard/thanksbot/internal/bot/tasks"
	"github.com/edgard/thanksbot/internal/config"
	"github.com/edgard/thanksbot/internal/database"
	"github.com/edgard/thanksbot/internal/logger"
	"github.com/edgard/thanksbot/internal/telegram"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath(cmd))
		},
	}
}

// serve initializes config, logger, database, Telegram client and scheduler,
// then blocks until ctx is cancelled or a component fails.
func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return err
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to initialize database", "path", cfg.Database.Path, "error", err)
		return err
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log, database.WithLocation(cfg.Location()))

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
	}
	dispatcher := handlers.NewDispatcher(hDeps)

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps, dispatcher)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return err
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return err
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps, dispatcher)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return err
	}
	if err := telegram.PublishCommands(ctx, tg, log, cmdHandlers); err != nil {
		log.Warn("Could not publish bot commands", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
		Sender: tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps), cfg.Location())
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return err
	}
	app := bot.NewBot(log, tg, sched)

	log.Info("Starting bot...", "version", Version)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return runErr
	}

	log.Info("Bot stopped gracefully.")
	return nil
}
