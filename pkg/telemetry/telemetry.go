// pkg/telemetry/telemetry.go

package telemetry

import (
	"context"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer = noop.NewTracerProvider().Tracer("stagehand")

// Enabled reports whether span recording is switched on. Telemetry is local
// and opt-in; spans land in a JSONL file, nothing leaves the host.
func Enabled() bool {
	return os.Getenv("STAGEHAND_TELEMETRY") == "1"
}

// Init configures OpenTelemetry; call this early in main().
func Init(service string) error {
	if !Enabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	dir := "/var/log/stagehand"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".stagehand", "telemetry")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cerr.Wrap(err, "create telemetry directory")
		}
	}

	file, err := os.OpenFile(filepath.Join(dir, "telemetry.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return cerr.Wrap(err, "open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		file.Close()
		return cerr.Wrap(err, "create file exporter")
	}

	hostname, _ := os.Hostname()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				"",
				attribute.String("service.name", service),
				attribute.String("host.name", hostname),
			),
		),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(service)
	return nil
}

// Start begins a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
