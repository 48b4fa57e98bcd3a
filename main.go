package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darrenvechain/flight-telemetry/config"
	"github.com/darrenvechain/flight-telemetry/recorder"
	"github.com/darrenvechain/flight-telemetry/sensor"
	"github.com/darrenvechain/flight-telemetry/sink"
	"github.com/ethereum/go-ethereum/common/mclock"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	flagPostgres   string
	flagCapacity   int
	flagInterval   time.Duration
	flagDrainEvery int
	flagDrainBatch int
	flagChannels   []string
	flagLogLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flight-telemetry",
		Short: "Cache instrument readings in memory and drain them to storage",
		Long: `flight-telemetry samples mock instruments at a fixed rate into one bounded
queue per channel and periodically drains the queues to storage.

While storage is unavailable readings stay queued. Once a queue is full new
readings are dropped and the queued ones are kept.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagPostgres, "postgres", "", "PostgreSQL connection string (in-memory storage if empty)")
	rootCmd.Flags().IntVar(&flagCapacity, "capacity", config.QueueCapacity, "Queue capacity per channel")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", config.TickInterval, "Sampling interval")
	rootCmd.Flags().IntVar(&flagDrainEvery, "drain-every", config.DrainEvery, "Ticks between drain passes")
	rootCmd.Flags().IntVar(&flagDrainBatch, "drain-batch", config.DrainBatch, "Max samples written per channel per drain pass")
	rootCmd.Flags().StringSliceVar(&flagChannels, "channels", config.DefaultChannels, "Mock channels to sample")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: time.TimeOnly,
		}),
	))
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if err := setupLogger(flagLogLevel); err != nil {
		return err
	}

	ctx := createExitContext()

	store, closeStore, err := createSink(ctx)
	if err != nil {
		slog.Error("failed to create sink", "err", err)
		return err
	}
	defer closeStore()

	sources := make([]sensor.Source, 0, len(flagChannels))
	for i, name := range flagChannels {
		sources = append(sources, sensor.NewMock(name, float64(100*i), 10, 100+i*25))
	}

	rec := recorder.New(mclock.System{}, store, recorder.Options{
		Capacity:   flagCapacity,
		Interval:   flagInterval,
		DrainEvery: flagDrainEvery,
		DrainBatch: flagDrainBatch,
	}, sources...)

	if err := rec.Run(ctx); err != nil {
		slog.Error("recorder failed", "err", err)
		return err
	}

	for _, s := range rec.Stats() {
		slog.Info("channel summary", "channel", s.Name, "pending", s.Pending, "dropped", s.Dropped)
	}
	return nil
}

func createSink(ctx context.Context) (sink.Sink, func(), error) {
	if flagPostgres == "" {
		slog.Info("using in-memory storage")
		return sink.NewMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", flagPostgres)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "err", err)
		}
	}

	store, err := sink.NewPostgres(ctx, db)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func createExitContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		slog.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
