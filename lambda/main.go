// ABOUTME: AWS Lambda entrypoint for the migration assessor
// ABOUTME: Hands every invocation payload to the trigger router

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/markalston/migration-assessor/config"
	"github.com/markalston/migration-assessor/events"
	"github.com/markalston/migration-assessor/logger"
	"github.com/markalston/migration-assessor/metrics"
	"github.com/markalston/migration-assessor/models"
	"github.com/markalston/migration-assessor/services"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Backends are built once per execution environment and reused across invocations.
	backends, err := services.NewBackends(cfg)
	if err != nil {
		slog.Error("Failed to initialize backends", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	router := events.NewRouter(services.NewProcessor(backends.Store, m), backends.Store, backends.Objects, m)

	lambda.Start(func(ctx context.Context, raw json.RawMessage) (models.Response, error) {
		return router.Handle(ctx, raw), nil
	})
}
