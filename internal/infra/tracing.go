package infra

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/pkg/bininfo"
	"exusiai.dev/gazeseq/internal/pkg/observability"
)

// TracerProvider installs the global tracer provider when tracing is enabled and
// flushes it on shutdown. With tracing disabled it returns nil and the global
// no-op provider stays in place.
func TracerProvider(lc fx.Lifecycle, conf *appconfig.Config) (*tracesdk.TracerProvider, error) {
	if !conf.TracingEnabled {
		return nil, nil
	}

	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.Bool("dev_mode", conf.DevMode),
		)),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
	}

	for _, name := range conf.TracingExporters {
		switch name {
		case "stdout":
			exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
			if err != nil {
				return nil, err
			}
			opts = append(opts, tracesdk.WithBatcher(exporter))
		case "otlp":
			exporter, err := otlptracegrpc.New(context.Background(),
				otlptracegrpc.WithEndpoint(conf.OTLPEndpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return nil, err
			}
			opts = append(opts, tracesdk.WithBatcher(exporter))
		default:
			return nil, fmt.Errorf("unknown tracing exporter: %s", name)
		}
	}

	tracerProvider := tracesdk.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)

	log.Info().
		Strs("exporters", conf.TracingExporters).
		Float64("sampleRate", conf.TracingSampleRate).
		Msg("tracing enabled")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tracerProvider.Shutdown(ctx)
		},
	})

	return tracerProvider, nil
}
