package otelhelper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpanRecordsResultAndError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := StartSpan(context.Background(), provider.Tracer("test"), "validation.validate",
		attribute.String(WorkflowIDKey, "wf-1"))
	SetResult(span, false, 2, 1)
	SetError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "validation.validate", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String(WorkflowIDKey, "wf-1"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int(ErrorCountKey, 2))
	assert.Contains(t, spans[0].Attributes(), attribute.Bool(ValidKey, false))
}
