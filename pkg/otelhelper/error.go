package otelhelper

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SetError marks span as failed with err.
func SetError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.AddEvent("error_occurred", trace.WithAttributes(
		attrs...,
	))
}

// SetResult annotates span with the counts of a validation outcome.
func SetResult(span trace.Span, valid bool, errorCount, warningCount int) {
	span.SetAttributes(
		attribute.Bool(ValidKey, valid),
		attribute.Int(ErrorCountKey, errorCount),
		attribute.Int(WarningCountKey, warningCount),
	)
}
