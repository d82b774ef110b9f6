package backoffice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"

	apiclient "github.com/Apurer/go-gin-backoffice/internal/client/backoffice"
	"github.com/Apurer/go-gin-backoffice/internal/platform/observability"
	"github.com/Apurer/go-gin-backoffice/internal/ui"
	"github.com/Apurer/go-gin-backoffice/internal/ui/views"
)

// Run starts the terminal admin client and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, cfg Config, programOpts ...tea.ProgramOption) error {
	logWriter, closeLog, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	instruments, shutdown, err := observability.Init(ctx, "backoffice-tui", observability.WithLogWriter(logWriter))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger
	// exporter errors would otherwise land on stderr and tear the screen
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		logger.Warn("telemetry error", slog.String("error", err.Error()))
	}))

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}

	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	logger.Info("back office client starting", slog.String("api_url", cfg.APIURL))
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	logger.Info("back office client stopped")
	return nil
}

// NewApp wires the API client into the products and orders views.
func NewApp(cfg Config, logger *slog.Logger) (*ui.App, error) {
	client, err := apiclient.New(cfg.APIURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("build API client: %w", err)
	}
	products := views.NewProductsView(client.Products(), views.WithLogger(logger))
	orders := views.NewOrdersView(client.Orders(), client.Products(), views.WithLogger(logger))
	return ui.NewApp([]views.View{products, orders}), nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
