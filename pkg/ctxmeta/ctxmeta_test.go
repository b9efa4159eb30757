package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/pkg/ctxmeta"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestWithValues_PutAndGet(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	ctx = ctxmeta.WithOrderID(ctx, "order-1")
	ctx = ctxmeta.WithJobID(ctx, "job-7")

	if got, ok := ctxmeta.RequestIDFromContext(ctx); !ok || got != "req-123" {
		t.Fatalf("request id: got %q ok=%v", got, ok)
	}
	if got, ok := ctxmeta.OrderIDFromContext(ctx); !ok || got != "order-1" {
		t.Fatalf("order id: got %q ok=%v", got, ok)
	}
	if got, ok := ctxmeta.JobIDFromContext(ctx); !ok || got != "job-7" {
		t.Fatalf("job id: got %q ok=%v", got, ok)
	}

	// Родитель не должен содержать значений
	if _, ok := ctxmeta.OrderIDFromContext(parent); ok {
		t.Fatalf("parent context must not contain order_id")
	}
}

func TestWithValue_EmptyKeepsContext(t *testing.T) {
	parent := context.Background()
	if ctx := ctxmeta.WithOrderID(parent, ""); ctx != parent {
		t.Fatalf("WithOrderID with empty id must return the same ctx")
	}
	var nilCtx context.Context
	if ctx := ctxmeta.WithRequestID(nilCtx, "req-1"); ctx != nil {
		t.Fatalf("WithRequestID(nil, ...) must return nil")
	}
	if id, ok := ctxmeta.JobIDFromContext(nilCtx); ok || id != "" {
		t.Fatalf("JobIDFromContext(nil) must be empty/false, got id=%q ok=%v", id, ok)
	}
}

func TestValue_ForeignKeyIgnored(t *testing.T) {
	// Значение по «чужому» строковому ключу не должно доставаться.
	ctx := context.WithValue(context.Background(), "order_id", "o-1") //nolint:staticcheck // проверяем именно строковый ключ
	if id, ok := ctxmeta.OrderIDFromContext(ctx); ok || id != "" {
		t.Fatalf("plain string key must not be recognized, got id=%q", id)
	}
}

func TestTraceAndSpanIDs(t *testing.T) {
	if id, ok := ctxmeta.TraceIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("TraceIDFromContext(background) => %q,%v; want \"\", false", id, ok)
	}

	// Локальный TracerProvider — без глобальной настройки.
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	if !ok || traceID != span.SpanContext().TraceID().String() {
		t.Fatalf("traceID=%s ok=%v", traceID, ok)
	}
	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	if !ok || spanID != span.SpanContext().SpanID().String() {
		t.Fatalf("spanID=%s ok=%v", spanID, ok)
	}
}
