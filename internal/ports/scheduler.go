package ports

import (
	"context"
	"time"
)

// Scheduler — надёжное отложенное выполнение: at-least-once, без отмены.
type Scheduler interface {
	// ScheduleAfter — выполнить обработчик handler с payload (JSON) не раньше чем через delay.
	ScheduleAfter(ctx context.Context, delay time.Duration, handler string, payload any) error
}
