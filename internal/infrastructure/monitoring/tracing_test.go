package monitoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/flavorforge/recipeai/internal/infrastructure/config"
)

func TestDisabledTracingIsNoop(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), "recipeai", &config.Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.Enabled())
	ctx, span := tp.StartCommandSpan(context.Background(), "search")
	EndSpan(span, nil)
	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestEndSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tp := &TracingProvider{tracer: provider.Tracer("test"), provider: provider, logger: zaptest.NewLogger(t)}

	ctx, span := tp.StartCommandSpan(context.Background(), "generate")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	EndSpan(span, errors.New("failed to generate recipe"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "command generate", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "failed to generate recipe", spans[0].Status().Description)
	require.NoError(t, tp.Shutdown(context.Background()))
}
