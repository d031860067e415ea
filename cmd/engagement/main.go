package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"video_history/internal/app"
	"video_history/internal/config"
	"video_history/internal/scheduler"
	"video_history/internal/service"
	"video_history/internal/source/graph"
	"video_history/internal/storage/csvfile"
	"video_history/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	secretsPath := flag.String("secrets", "secret.yaml", "path to optional secrets file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.csv> [output.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := app.SetupLogger("info")

	cfg, err := app.LoadConfig(*configPath, *secretsPath, flag.Args())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = app.SetupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("engagement failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	tokens, err := graph.NewTokenRing(cfg.Graph.Tokens)
	if err != nil {
		return fmt.Errorf("graph tokens: %w", err)
	}

	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	m, reg := app.NewMetrics()
	app.ServeMetrics(ctx, cfg.Metrics.ListenAddress, reg, logger)

	var (
		store    service.EngagementStore
		runState service.RunStateStore
	)
	switch cfg.Output.Kind {
	case config.OutputPostgres:
		db, err := app.OpenDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewEngagementStore(db)
		runState = postgres.NewRunStateStore(db)
	default:
		w, err := csvfile.NewEngagementWriter(cfg.Output.Path)
		if err != nil {
			return err
		}
		defer w.Close()
		store = w
	}

	pub, err := app.NewPublisher(cfg.RabbitMQ, logger)
	if err != nil {
		return err
	}
	if pub != nil {
		defer pub.Close()
	}

	client := graph.NewClient(graph.Config{
		BaseURL:           cfg.Graph.BaseURL,
		Timeout:           cfg.Graph.Timeout,
		RetryWait:         cfg.Graph.RetryWait,
		MaxAttempts:       cfg.Graph.MaxAttempts,
		RequestsPerSecond: cfg.Graph.RequestsPerSecond,
	}, tokens, m, logger)

	engagement := service.NewEngagementService(
		csvfile.NewReader(cfg.Input.Path, cfg.Input.Column),
		client,
		store,
		runState,
		pub,
		logger,
	)

	logger.Info("starting engagement lookup",
		"input", cfg.Input.Path,
		"output", cfg.Output.Kind,
		"tokens", tokens.Len(),
		"interval", cfg.Pipeline.Interval,
	)

	return scheduler.NewScheduler(engagement, cfg.Pipeline.Interval, logger).Start(ctx)
}
