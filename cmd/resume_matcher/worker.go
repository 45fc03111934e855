package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/worker"
)

const consumerTag = "resume-matcher"

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis requests from RabbitMQ",
	Long: "Consume analysis requests from the configured AMQP queue, download each resume from S3-compatible " +
		"storage, analyze it and publish status updates to the results exchange.",
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().Int("consumers", 2, "Number of concurrent consumers")
	bindFlag("worker.consumers", workerCmd.Flags().Lookup("consumers"))

	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if err := appConfig.ValidateWorker(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	matcher, _, err := newMatcher(appConfig, appLogger)
	if err != nil {
		return err
	}

	store, err := worker.NewS3StoreFromConfig(ctx, appConfig.Storage)
	if err != nil {
		return err
	}

	broker, err := worker.Dial(appConfig.Worker)
	if err != nil {
		return err
	}
	defer func() {
		if err := broker.Close(); err != nil {
			appLogger.Warn("failed to close broker connection", zap.Error(err))
		}
	}()

	deliveries, err := broker.Deliveries(consumerTag)
	if err != nil {
		return err
	}

	appLogger.Info("worker started",
		zap.String("queue", appConfig.Worker.Queue),
		zap.String("bucket", appConfig.Storage.Bucket),
		zap.Int("consumers", appConfig.Worker.Consumers))

	w := worker.New(matcher, store, broker.Publisher(), worker.WithLogger(appLogger))
	if err := w.Run(ctx, deliveries, appConfig.Worker.Consumers); err != nil && ctx.Err() == nil {
		return err
	}
	appLogger.Info("worker stopped")
	return nil
}
