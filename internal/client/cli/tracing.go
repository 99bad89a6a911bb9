package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/daastan/internal/client/cli"

// traceOutput receives finished spans when tracing is enabled.
var traceOutput io.Writer = os.Stderr

// newTracer returns a tracer that prints every span to traceOutput as it
// ends, and the shutdown func that flushes the exporter.
func newTracer() (trace.Tracer, func(context.Context) error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(traceOutput))
	if err != nil {
		return nil, nil, fmt.Errorf("stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", "daastan"))),
		sdktrace.WithSyncer(exp),
	)
	return tp.Tracer(tracerName), tp.Shutdown, nil
}
