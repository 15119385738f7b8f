package services

import (
	"log/slog"

	"github.com/dukex/flowlint/pkg/log"
	"github.com/dukex/flowlint/pkg/otelhelper"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a service.
type Option func(*base)

type base struct {
	logger *slog.Logger
	tracer trace.Tracer
	strict bool

	minConfidence int
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

// WithTracer sets the tracer used for service spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *base) {
		b.tracer = tracer
	}
}

// WithStrict rejects legacy field references instead of warning about them.
func WithStrict(strict bool) Option {
	return func(b *base) {
		b.strict = strict
	}
}

// WithMinConfidence sets the suggestion score a migration plan adopts on its own.
func WithMinConfidence(score int) Option {
	return func(b *base) {
		b.minConfidence = score
	}
}

func newBase(module string, opts []Option) base {
	b := base{}

	for _, opt := range opts {
		opt(&b)
	}

	if b.logger == nil {
		b.logger = log.WithModule(module)
	}

	if b.minConfidence <= 0 {
		b.minConfidence = DefaultMinConfidence
	}

	if b.tracer == nil {
		b.tracer = otelhelper.Tracer("flowlint/" + module)
	}

	return b
}
