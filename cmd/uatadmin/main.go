// Command uatadmin administers applicants, programs and trusted intermediary
// groups against the configured stores.
package main

import (
	"context"
	"os"
	"os/signal"

	"uat/internal/platform/config"
	"uat/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to start", "error", err)
		os.Exit(1)
	}

	err = newRootCommand(a).ExecuteContext(ctx)
	if cerr := a.Close(); cerr != nil {
		log.WarnContext(ctx, "shutdown", "error", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
