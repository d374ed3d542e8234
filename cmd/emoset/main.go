package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/emoset/emoset/utils"
)

func main() {
	// Ctrl+C or SIGTERM cancels the command context, which ends the capture loop cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		utils.Die(commandName(), err)
	}
}
