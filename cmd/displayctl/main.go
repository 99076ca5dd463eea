package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/displayctl/internal/errors"
	"codeberg.org/mutker/displayctl/internal/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go handleSignals(cancel)

	err := newRootCmd(connectMutter).ExecuteContext(ctx)
	cancel()

	if err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithCode(appErr).Msg("Command failed")
		} else {
			logger.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}

// handleSignals cancels in-flight display server calls on SIGINT or SIGTERM.
func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal")
	cancel()
}
