package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing /analyze, /skills, /score, /vocabulary and /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	bindFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	matcher, extractor, err := newMatcher(appConfig, appLogger)
	if err != nil {
		return err
	}

	appLogger.Info("starting server",
		zap.Int("port", appConfig.Server.Port),
		zap.Bool("rate_limit", appConfig.Server.RateLimit.Enabled))

	return server.New(appConfig.Server, matcher, extractor, appLogger).Start(cmd.Context())
}
