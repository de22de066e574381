// Package main contains the entrypoint for the thanks bot.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"
)

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string) int {
	cmd := NewRootCmd(Version)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		return 1
	}
	return 0
}
