package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/finbuddy/finbuddy/internal/app"
	"github.com/finbuddy/finbuddy/internal/common"
)

func main() {
	// Secrets come from the environment; a local .env is a convenience for
	// development and its absence is not an error.
	_ = godotenv.Load()

	configPath := os.Getenv("FINBUDDY_CONFIG")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(ctx, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("Bot loop exited")
		common.PrintShutdownBanner(a.Logger)
		os.Exit(1)
	}

	common.PrintShutdownBanner(a.Logger)
}
