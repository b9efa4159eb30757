package ports

import (
	"context"
	"time"
)

// RateLimiter — общий для всех процессов лимитер (состояние хранится вне процесса).
type RateLimiter interface {
	// TryAcquire — allowed=false и retryAfter > 0, если окно по ключу исчерпано.
	TryAcquire(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
