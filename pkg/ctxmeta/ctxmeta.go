// Пакет ctxmeta — нейтральный слой для метаданных, которые прокидываются через
// context.Context (request_id, order_id, job_id, trace/span).
// HTTP-слой, консьюмер заданий и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyOrderID   ctxKey = "order_id"
	KeyJobID     ctxKey = "job_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return value(ctx, KeyRequestID)
}

// WithOrderID — заказ, над которым идёт работа.
func WithOrderID(ctx context.Context, orderID string) context.Context {
	return withValue(ctx, KeyOrderID, orderID)
}

func OrderIDFromContext(ctx context.Context) (string, bool) {
	return value(ctx, KeyOrderID)
}

// WithJobID — задание планировщика, в рамках которого выполняется код.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return withValue(ctx, KeyJobID, jobID)
}

func JobIDFromContext(ctx context.Context) (string, bool) {
	return value(ctx, KeyJobID)
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func value(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
