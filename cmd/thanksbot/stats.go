package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/edgard/thanksbot/internal/bot/handlers"
	"github.com/edgard/thanksbot/internal/config"
	"github.com/edgard/thanksbot/internal/database"
	"github.com/edgard/thanksbot/internal/logger"
)

// NewStatsCmd creates the stats command, which prints the aggregate without
// connecting to Telegram.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print total messages and top recipients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, _ := cmd.Flags().GetString("date")
			asJSON, _ := cmd.Flags().GetBool("json")

			cfg, err := config.LoadOffline(configPath(cmd))
			if err != nil {
				return err
			}
			log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.JSON)

			db, err := database.NewDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)
			store := database.NewStore(db, log, database.WithLocation(cfg.Location()))

			var stats *database.Stats
			if date == "" {
				stats, err = store.GetStats(cmd.Context())
			} else {
				day, parseErr := time.Parse(time.DateOnly, date)
				if parseErr != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD: %w", date, parseErr)
				}
				stats, err = store.GetStatsForDate(cmd.Context(), day)
			}
			if err != nil {
				return err
			}

			return writeStats(cmd.OutOrStdout(), cfg, stats, asJSON, log)
		},
	}

	cmd.Flags().String("date", "", "only count messages accepted on this date (YYYY-MM-DD)")
	cmd.Flags().Bool("json", false, "output in JSON format")
	return cmd
}

type statsOutput struct {
	Total         int64            `json:"total"`
	TopRecipients []recipientCount `json:"top_recipients"`
}

type recipientCount struct {
	Recipient string `json:"recipient"`
	Count     int64  `json:"count"`
}

func writeStats(w io.Writer, cfg *config.Config, stats *database.Stats, asJSON bool, log *slog.Logger) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, handlers.FormatStats(cfg.Messages.StatsHeader, cfg.Messages.StatsEmpty, stats))
		return err
	}

	out := statsOutput{Total: stats.Total, TopRecipients: make([]recipientCount, 0, len(stats.TopRecipients))}
	for _, rc := range stats.TopRecipients {
		out.TopRecipients = append(out.TopRecipients, recipientCount{Recipient: rc.Recipient, Count: rc.Count})
	}
	log.Debug("Writing stats as JSON", "total", out.Total)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
