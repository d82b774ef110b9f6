package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	backofficeserver "github.com/Apurer/go-gin-backoffice/go"

	ordermemory "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
	productmemory "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/memory"
	productobs "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/observability"
	productpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/persistence/postgres"
	productworkflows "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/workflows"
	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
	"github.com/Apurer/go-gin-backoffice/internal/platform/health"
	"github.com/Apurer/go-gin-backoffice/internal/platform/metrics"
	"github.com/Apurer/go-gin-backoffice/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-backoffice/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-backoffice/internal/platform/temporal"
)

const serviceName = "backoffice-api"

// shutdownTimeout bounds the graceful drain after ctx is cancelled.
const shutdownTimeout = 5 * time.Second

// Run boots the back office HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := BuildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	productService := productobs.New(
		productapp.NewService(stores.Products),
		productobs.WithLogger(logger),
		productobs.WithTracer(instruments.Tracer("internal.products.application")),
		productobs.WithMeter(instruments.Meter("internal.products.application")),
	)
	orderService := orderobs.New(
		orderapp.NewService(stores.Orders),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var productWorkflows productports.WorkflowOrchestrator = productworkflows.NewInlineProductWorkflows(productService)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, creating products inline")
	} else if temporalClient, err := platformtemporal.Dial(
		platformtemporal.ClientConfig{Address: cfg.TemporalAddress, Namespace: cfg.TemporalNamespace},
		instruments.Tracer("temporal-client"),
		logger,
	); err != nil {
		logger.Warn("Temporal workflows unavailable, creating products inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		productWorkflows = productworkflows.NewTemporalProductWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	healthHandler := health.NewHandler()
	if stores.DB != nil {
		db := stores.DB
		healthHandler.RegisterChecker("database", health.NewSimpleChecker("database", func(ctx context.Context) error {
			return platformpostgres.Ping(ctx, db)
		}))
	}

	engine := gin.New()
	engine.Use(otelgin.Middleware(serviceName))
	router := backofficeserver.NewRouterWithGinEngine(engine, backofficeserver.ApiHandleFunctions{
		ProductAPI: backofficeserver.NewProductAPI(productService, productWorkflows, logger),
		OrderAPI:   backofficeserver.NewOrderAPI(orderService, logger),
		Health:     healthHandler,
		Metrics:    metrics.NewHTTPMetrics(),
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return serve(ctx, srv, logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Back office API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Back office API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down Back office API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// Stores are the repositories selected for the process plus the pool behind them.
type Stores struct {
	Products productports.Repository
	Orders   orderports.Repository
	DB       *gorm.DB
}

// Close releases the pool, if any.
func (s Stores) Close() {
	_ = platformpostgres.Close(s.DB)
}

// BuildStores connects to PostgreSQL and migrates the schema when a database
// is configured. Without one it falls back to in-memory repositories. A
// configured database that cannot be reached is an error.
func BuildStores(ctx context.Context, cfg Config, logger *slog.Logger) (Stores, error) {
	dsn := cfg.DSN()
	if dsn == "" {
		logger.Warn("no database configured, falling back to in-memory repositories")
		return Stores{Products: productmemory.NewRepository(), Orders: ordermemory.NewRepository()}, nil
	}
	db, err := platformpostgres.Connect(ctx, dsn, cfg.Pool)
	if err != nil {
		return Stores{}, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		_ = platformpostgres.Close(db)
		return Stores{}, fmt.Errorf("migrate schema: %w", err)
	}
	logger.Info("repositories configured with postgres")
	return Stores{
		Products: productpostgres.NewRepository(db),
		Orders:   orderpostgres.NewRepository(db),
		DB:       db,
	}, nil
}
