package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/cradoe/safetrain/internal/app"
	seeders "github.com/cradoe/safetrain/internal/seeder"
	"github.com/cradoe/safetrain/internal/version"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	seed := flag.Bool("seed", false, "seed the training courses and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	cfg := app.LoadConfig(logger)

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *seed {
		if err := seeders.New(application.DB).Run(ctx); err != nil {
			return fmt.Errorf("seeding courses: %w", err)
		}

		logger.Info("training courses seeded")
		return nil
	}

	waitWorker := func() {}
	if wk := application.Worker(); wk != nil {
		waitWorker = application.StartWorker(ctx, wk)
	}

	err = application.ServeHTTP(ctx)

	// the consumer must stop before Close tears down Kafka and the database
	cancel()
	waitWorker()

	return err
}
