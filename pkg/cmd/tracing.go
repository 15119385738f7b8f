package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/flowlint/pkg/otelhelper"
	"go.opentelemetry.io/otel/trace"
)

// NewTracer returns an exporting tracer when enabled, otherwise the no-op
// global tracer. The returned shutdown func is always safe to call.
//
// nolint:ireturn // Returning interface is intentional for OpenTelemetry tracing
func NewTracer(ctx context.Context, logger *slog.Logger, serviceName string, enabled bool) (trace.Tracer, otelhelper.ShutdownFunc, error) {
	if !enabled {
		return otelhelper.Tracer(serviceName), func(context.Context) error { return nil }, nil
	}

	tracer, shutdown, err := otelhelper.NewTracer(ctx, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	logger.InfoContext(ctx, "Tracing enabled", "service", serviceName)

	return tracer, shutdown, nil
}
