package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("fmma-backend/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// Span attribute keys shared by the match handlers.
var (
	attrMatchID    = attribute.Key("fmma.match_id")
	attrDiscipline = attribute.Key("fmma.discipline")
	attrBatchSize  = attribute.Key("fmma.predictions.batch_size")
)

// startSpan opens a child span for handler entry points only. Requests
// filtered out by RequestTracing have no parent and get the no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
