package otel_test

import (
	"context"
	"errors"
	"fleetdesk/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScopeAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("booking.count", 3)
		scope.SetAttributes(map[string]any{
			"overdue":  true,
			"grace":    90 * time.Minute,
			"statuses": []string{"booked", "ongoing"},
		})
	})

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["booking.count"].AsInt64())
	assert.True(t, attrs["overdue"].AsBool())
	assert.Equal(t, "1h30m0s", attrs["grace"].AsString())
	assert.Equal(t, []string{"booked", "ongoing"}, attrs["statuses"].AsStringSlice())
}

func TestScopeTraceIfError(t *testing.T) {
	t.Run("nil leaves the span unset", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) { scope.TraceIfError(nil) })

		assert.Equal(t, codes.Unset, span.Status().Code)
	})

	t.Run("error marks the span", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) { scope.TraceIfError(errors.New("boom")) })

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "boom", span.Status().Description)
		assert.Len(t, span.Events(), 1)
	})
}
