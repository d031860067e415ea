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
	"video_history/internal/history"
	"video_history/internal/layout"
	"video_history/internal/scheduler"
	"video_history/internal/service"
	"video_history/internal/source/wayback"
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
		logger.Error("archiver failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := app.SignalContext(logger)
	defer cancel()

	m, reg := app.NewMetrics()
	app.ServeMetrics(ctx, cfg.Metrics.ListenAddress, reg, logger)

	var (
		store    service.VideoStore
		runState service.RunStateStore
	)
	switch cfg.Output.Kind {
	case config.OutputPostgres:
		db, err := app.OpenDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewVideoStore(db, postgres.NewTransactionManager(db))
		runState = postgres.NewRunStateStore(db)
	default:
		w, err := csvfile.NewVideoWriter(cfg.Output.Path)
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

	source := wayback.New(wayback.Config{
		TimemapURL:     cfg.Archive.TimemapURL,
		UserAgent:      cfg.Archive.UserAgent,
		Timeout:        cfg.Archive.Timeout,
		MaxAttempts:    cfg.Archive.Retry.MaxAttempts,
		InitialBackoff: cfg.Archive.Retry.InitialBackoff,
		MaxBackoff:     cfg.Archive.Retry.MaxBackoff,
	}, layout.YouTube(), m, logger)

	assembler := history.NewAssembler(source, cfg.Pipeline.SnapshotConcurrency, logger)

	archive := service.NewArchiveService(
		csvfile.NewReader(cfg.Input.Path, cfg.Input.Column),
		source,
		assembler,
		store,
		runState,
		pub,
		m,
		logger,
		cfg.Pipeline,
	)

	logger.Info("starting archiver",
		"input", cfg.Input.Path,
		"output", cfg.Output.Kind,
		"layouts", layout.YouTube().Names(),
		"batch_size", cfg.Pipeline.BatchSize,
		"interval", cfg.Pipeline.Interval,
	)

	return scheduler.NewScheduler(archive, cfg.Pipeline.Interval, logger).Start(ctx)
}
