package ports

import "context"

// Logger — минимальный контракт логгера для внешних слоёв.
// Метаданные из контекста (request_id, order_id, job_id) реализация добавляет сама.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)  // Infof — информационные сообщения.
	Warnf(ctx context.Context, format string, args ...any)  // Warnf — предупреждения.
	Errorf(ctx context.Context, format string, args ...any) // Errorf — ошибки.
}
