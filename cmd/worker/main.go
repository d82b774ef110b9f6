package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-backoffice/internal/app/api"
	productobs "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/observability"
	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	platformobservability "github.com/Apurer/go-gin-backoffice/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-backoffice/internal/platform/temporal"
	productactivities "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/activities/products"
	productworkflows "github.com/Apurer/go-gin-backoffice/internal/platform/temporal/workflows/products"
)

func main() {
	ctx := context.Background()
	const serviceName = "backoffice-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := api.BuildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("worker failed to configure repositories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stores.Close()
	productService := productobs.New(
		productapp.NewService(stores.Products),
		productobs.WithLogger(logger),
		productobs.WithTracer(instruments.Tracer("internal.products.application")),
		productobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	activities := productactivities.NewActivities(productService)

	temporalClient, err := platformtemporal.Dial(
		platformtemporal.ClientConfig{Address: cfg.TemporalAddress, Namespace: cfg.TemporalNamespace},
		instruments.Tracer("temporal-worker"),
		logger,
	)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, productworkflows.ProductCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(productworkflows.ProductCreationWorkflow, workflow.RegisterOptions{Name: productworkflows.ProductCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateProduct, activity.RegisterOptions{Name: productactivities.CreateProductActivityName})

	logger.Info("worker listening", slog.String("taskQueue", productworkflows.ProductCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
