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

	ordertypes "github.com/Apurer/go-gin-backoffice/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-backoffice/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   orderports.Service
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

func New(inner orderports.Service, opts ...Option) orderports.Service {
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

func (s *Service) List(ctx context.Context) ([]*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, input ordertypes.OrderIdentifier) (*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetByID", trace.WithAttributes(attribute.Int64("order.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", input.ID))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, input ordertypes.CreateOrderInput) (*ordertypes.OrderProjection, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.Int64("order.product_id", input.ProductID),
		attribute.Int("order.quantity", int(input.Quantity)),
	))
	defer span.End()

	result, err := s.inner.Create(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.Int64("order.product_id", input.ProductID))
	}
	span.SetAttributes(attribute.Int64("order.id", result.Entity.ID))
	s.metrics.recordMutation(ctx, "create")
	s.metrics.recordQuantity(ctx, input.Quantity)
	s.logInfo(ctx, "order created",
		slog.Int64("order.id", result.Entity.ID),
		slog.Int64("order.product_id", input.ProductID),
		slog.Int("order.quantity", int(input.Quantity)),
	)
	return result, nil
}

func (s *Service) Update(ctx context.Context, input ordertypes.UpdateOrderInput) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.Int64("order.id", input.ID)))
	defer span.End()

	if err := s.inner.Update(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to update order", slog.Int64("order.id", input.ID))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "order updated", slog.Int64("order.id", input.ID))
	return nil
}

func (s *Service) Delete(ctx context.Context, input ordertypes.OrderIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", input.ID)))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.Int64("order.id", input.ID))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "order deleted", slog.Int64("order.id", input.ID))
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
	quantity  metric.Int64Histogram
}

func newServiceMetrics(m metric.Meter, logger *slog.Logger) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, err := m.Int64Counter("orders.service.mutations", metric.WithDescription("Number of order writes by operation"))
	if err != nil {
		logInstrumentError(logger, "orders.service.mutations", err)
		mutations = noopmetric.Int64Counter{}
	}
	quantity, err := m.Int64Histogram("orders.created.quantity", metric.WithDescription("Quantity requested per created order"))
	if err != nil {
		logInstrumentError(logger, "orders.created.quantity", err)
		quantity = noopmetric.Int64Histogram{}
	}
	return serviceMetrics{mutations: mutations, quantity: quantity}
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

func (m serviceMetrics) recordQuantity(ctx context.Context, quantity int32) {
	if m.quantity != nil {
		m.quantity.Record(ctx, int64(quantity))
	}
}

var _ orderports.Service = (*Service)(nil)
