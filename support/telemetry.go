package support

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc/credentials"
)

func ConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func HoneycombExporter(ctx context.Context, team string, dataset string) (*otlptrace.Exporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint("api.honeycomb.io:443"),
		otlptracegrpc.WithHeaders(map[string]string{
			"x-honeycomb-team":    team,
			"x-honeycomb-dataset": dataset,
		}),
		otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")),
	}

	client := otlptracegrpc.NewClient(opts...)
	return otlptrace.New(ctx, client)
}

// Tracing installs the global tracer provider for the exporter named in
// settings. The returned func flushes and stops it.
func Tracing(ctx context.Context, service string, settings Settings) (func(), error) {
	var option trace.TracerProviderOption

	switch settings.TraceExporter {
	case "", "none":
		return func() {}, nil
	case "console":
		exporter, err := ConsoleExporter()
		if err != nil {
			return nil, err
		}
		option = trace.WithSyncer(exporter)
	case "honeycomb":
		team := os.Getenv("HONEYCOMB_TEAM")
		if team == "" {
			return nil, errors.New("HONEYCOMB_TEAM is not set")
		}

		exporter, err := HoneycombExporter(ctx, team, env("HONEYCOMB_DATASET", service))
		if err != nil {
			return nil, err
		}
		option = trace.WithBatcher(exporter)
	default:
		return nil, errors.Errorf("unknown VIEWS_TRACE_EXPORTER %q", settings.TraceExporter)
	}

	provider := trace.NewTracerProvider(
		option,
		trace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	)
	otel.SetTracerProvider(provider)

	return func() {
		_ = provider.Shutdown(context.Background())
	}, nil
}
