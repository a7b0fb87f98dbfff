package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/plangrid/internal/cli"
	"github.com/alexanderramin/plangrid/internal/config"
	"github.com/alexanderramin/plangrid/internal/db"
	"github.com/alexanderramin/plangrid/internal/repository"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	defaults, err := cfg.Timeline.Domain()
	if err != nil {
		return fmt.Errorf("default timeline: %w", err)
	}

	// Wire the state repository for the configured backend
	var repo repository.StateRepo
	switch cfg.Backend {
	case config.BackendSQLite:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		repo = repository.NewSQLiteStateRepo(database)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		repo = repository.NewRedisStateRepo(client)
	case config.BackendMemory:
		repo = repository.NewMemoryStateRepo()
	}

	var observer store.MutationObserver = store.NoopObserver{}
	if cfg.Log.Calls {
		observer = store.NewLogObserver(os.Stderr)
	}

	s, err := store.Open(ctx, repo,
		store.WithStorageKey(cfg.StorageKey),
		store.WithDefaultTimeline(defaults),
		store.WithLogger(logger),
		store.WithObserver(observer),
	)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	app := &cli.App{
		Store:  s,
		Config: cfg,
		Logger: logger,
	}

	// Confirmation prompts need an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
