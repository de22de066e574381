package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"

	"github.com/edgard/thanksbot/internal/bot/handlers"
	"github.com/edgard/thanksbot/internal/database"
)

const reportSendTimeout = 10 * time.Second

// newDailyReportTask creates a task that posts yesterday's stats to the
// configured report chat. It does nothing when no chat is configured.
func newDailyReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskDailyReport)

	return func(ctx context.Context) error {
		chatID := deps.Config.Telegram.ReportChatID
		if chatID == 0 {
			log.WarnContext(ctx, "Daily report enabled but telegram.report_chat_id is not set, skipping")
			return nil
		}
		if deps.Sender == nil {
			return fmt.Errorf("daily report has no sender")
		}

		day := ReportDay(deps.now(), deps.Config.Location())
		stats, err := deps.Store.GetStatsForDate(ctx, day)
		if err != nil {
			log.ErrorContext(ctx, "Failed to compute daily stats", "date", day.Format(time.DateOnly), "error", err)
			return fmt.Errorf("daily report stats for %s: %w", day.Format(time.DateOnly), err)
		}

		msgs := deps.Config.Messages
		text := FormatDailyReport(msgs.DailyReportHeader, msgs.StatsHeader, msgs.StatsEmpty, day, stats)

		sendCtx, cancel := context.WithTimeout(ctx, reportSendTimeout)
		defer cancel()
		if _, err := deps.Sender.SendMessage(sendCtx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to send daily report", "chat_id", chatID, "error", err)
			return fmt.Errorf("failed to send daily report: %w", err)
		}

		log.InfoContext(ctx, "Daily report sent", "chat_id", chatID, "date", day.Format(time.DateOnly), "total", stats.Total)
		return nil
	}
}

// ReportDay returns the calendar date before now in loc, as midnight UTC.
func ReportDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc).AddDate(0, 0, -1)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDailyReport renders one day's stats below the report header.
func FormatDailyReport(reportHeader, statsHeader, empty string, day time.Time, stats *database.Stats) string {
	title := strings.ReplaceAll(reportHeader, "{date}", day.Format(handlers.DateLayout))
	return title + "\n\n" + handlers.FormatStats(statsHeader, empty, stats)
}
