package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tailorshop/cmd"
	"tailorshop/internal/adapters/in/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	gormDB, err := cmd.OpenDatabase(configs)
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return cli.NewRootCommand(app.CreateCLIApp()).ExecuteContext(ctx)
}
