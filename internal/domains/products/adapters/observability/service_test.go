package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	productmemory "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/memory"
	productapp "github.com/Apurer/go-gin-backoffice/internal/domains/products/application"
	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
)

func TestService_RecordsSpansMetricsAndLogs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	var logs bytes.Buffer

	svc := New(
		productapp.NewService(productmemory.NewRepository()),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)
	ctx := context.Background()

	created, err := svc.Create(ctx, producttypes.CreateProductInput{
		ProductFields: producttypes.ProductFields{Name: "Widget", Price: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, producttypes.ProductIdentifier{ID: created.Entity.ID + 100})
	require.ErrorIs(t, err, productports.ErrNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "ProductService.Create", spans[0].Name())
	require.Equal(t, "ProductService.GetByID", spans[1].Name())
	require.Len(t, spans[1].Events(), 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Equal(t, "products.service.mutations", rm.ScopeMetrics[0].Metrics[0].Name)

	require.Contains(t, logs.String(), "product created")
	require.Contains(t, logs.String(), "failed to load product")
}

type failingMeter struct {
	noopmetric.Meter
}

func (failingMeter) Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	return nil, errors.New("instrument already registered")
}

func TestService_KeepsWorkingWhenInstrumentsFail(t *testing.T) {
	var logs bytes.Buffer
	svc := New(
		productapp.NewService(productmemory.NewRepository()),
		WithMeter(failingMeter{}),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	_, err := svc.Create(context.Background(), producttypes.CreateProductInput{
		ProductFields: producttypes.ProductFields{Name: "Widget", Price: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)
	require.Contains(t, logs.String(), "metric instrument unavailable")
	require.Contains(t, logs.String(), "products.service.mutations")
}
