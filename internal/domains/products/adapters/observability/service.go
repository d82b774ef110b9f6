package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	producttypes "github.com/Apurer/go-gin-backoffice/internal/domains/products/application/types"
	productports "github.com/Apurer/go-gin-backoffice/internal/domains/products/ports"
)

const tracerName = "github.com/Apurer/go-gin-backoffice/internal/domains/products/adapters/observability/service"

// Service decorates the products service with tracing, logging, and metrics.
type Service struct {
	inner   productports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	meter   metric.Meter
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.meter = m
	}
}

// New wraps the core products service.
func New(inner productports.Service, opts ...Option) productports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	s.metrics = newServiceMetrics(s.meter, s.logger)
	return s
}

func (s *Service) List(ctx context.Context) ([]*producttypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(result)))
	s.logInfo(ctx, "products listed", slog.Int("product.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, input producttypes.ProductIdentifier) (*producttypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetByID", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", input.ID))
	}
	s.logInfo(ctx, "product loaded", slog.Int64("product.id", input.ID))
	return result, nil
}

func (s *Service) Create(ctx context.Context, input producttypes.CreateProductInput) (*producttypes.ProductProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Create")
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", input.Name))
	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", input.Name))
	}
	span.SetAttributes(attribute.Int64("product.id", result.Entity.ID))
	s.metrics.recordMutation(ctx, "create")
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.Entity.ID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, input producttypes.UpdateProductInput) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	if err := s.inner.Update(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to update product", slog.Int64("product.id", input.ID))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "product updated", slog.Int64("product.id", input.ID))
	return nil
}

func (s *Service) Delete(ctx context.Context, input producttypes.ProductIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Delete", trace.WithAttributes(attribute.Int64("product.id", input.ID)))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", input.ID))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", input.ID))
	return nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter, logger *slog.Logger) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, err := m.Int64Counter("products.service.mutations", metric.WithDescription("Number of product writes by operation"))
	if err != nil {
		logInstrumentError(logger, "products.service.mutations", err)
		mutations = noopmetric.Int64Counter{}
	}
	return serviceMetrics{mutations: mutations}
}

func logInstrumentError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("metric instrument unavailable, recording disabled",
		slog.String("instrument", name),
		slog.String("error", err.Error()),
	)
}

func (m serviceMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

var _ productports.Service = (*Service)(nil)
