// Package temporal hosts the durable product workflows and the client wiring
// shared by the API and the worker.
package temporal

import (
	"io"
	"log/slog"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ClientConfig locates the Temporal frontend.
type ClientConfig struct {
	Address   string
	Namespace string
}

// Dial connects to Temporal with OpenTelemetry tracing and slog logging.
func Dial(cfg ClientConfig, tracer oteltrace.Tracer, logger *slog.Logger) (client.Client, error) {
	options, err := ClientOptions(cfg, tracer, logger)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

// ClientOptions builds the options used by Dial.
func ClientOptions(cfg ClientConfig, tracer oteltrace.Tracer, logger *slog.Logger) (client.Options, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	address := cfg.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}
