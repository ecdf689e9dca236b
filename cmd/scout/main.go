// Command scout is a terminal research assistant for the IDOS ecosystem. It
// streams answers from Gemini with Google Search grounding and shows the web
// sources each answer was grounded on.
//
// Usage:
//
//	GEMINI_API_KEY=... scout [flags]
//
// Flags:
//
//	-config string        Path to TOML config file (default: ~/.scout/config.toml)
//	-model string         Model ID (default: gemini-2.5-flash)
//	-temperature float    Sampling temperature in [0, 1] (default: 0.7)
//	-system-prompt string Path to a file holding the system instruction
//	-no-search            Disable Google Search grounding
//	-api-key string       API key (overrides GEMINI_API_KEY and GOOGLE_API_KEY)
//	-log string           Path to the JSON log file (default: ~/.scout/scout.log, "" disables)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/scout"
	bt "github.com/fwojciec/scout/bubbletea"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	f, err := parseFlags(args, home)
	if err != nil {
		return err
	}

	logger, err := newLogger(f.logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := loadFileConfig(f.configPath, f.configPath != defaultConfigPath(home))
	if err != nil {
		return err
	}
	config, err := resolveConfig(f, file)
	if err != nil {
		return err
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Env vars are read here and passed as values.
	key := resolveAPIKey(f.apiKey, os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	provider := resolveProvider(ctx, key, logger)

	session := scout.NewSession(provider, config, scout.WithLogger(logger))
	if err := session.Start(ctx); err != nil {
		// The banner already tells the user; keep the UI up so they can see it.
		logger.Error("start session", zap.Error(err))
	}

	if err := bt.Run(ctx, bt.New(session, scout.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
