package main

import (
	"os"

	"github.com/spf13/cobra"
)

const appName = "thanksbot"

// NewRootCmd builds the command tree. Without a subcommand the bot is served.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Telegram bot that records thanks between users",
		Long:          "thanksbot accepts \"@username text\" messages in Telegram, stores them and reports who was thanked the most.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath(cmd))
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(appName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("config", "./config.yaml", "Path to configuration file")

	cmd.AddCommand(
		NewServeCmd(),
		NewStatsCmd(),
	)
	return cmd
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
