package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что RateLimiter удовлетворяет интерфейсу RateLimiter.
var _ ports.RateLimiter = (*RateLimiter)(nil)

// RateLimiter — фиксированное окно на ключ, общий счётчик для всех экземпляров сервиса.
type RateLimiter struct {
	pool   *pgxpool.Pool
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter — limit попыток за window на ключ.
func NewRateLimiter(pool *pgxpool.Pool, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{pool: pool, limit: limit, window: window, now: time.Now}
}

// TryAcquire — атомарно увеличивает счётчик текущего окна.
// При превышении лимита возвращает время до начала следующего окна.
func (l *RateLimiter) TryAcquire(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.now().UTC()
	windowStart := now.Truncate(l.window)

	var (
		start time.Time
		count int
	)
	err := l.pool.QueryRow(ctx, `
		INSERT INTO rate_limits (key, window_start, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (key) DO UPDATE SET
			count = CASE WHEN rate_limits.window_start < EXCLUDED.window_start
				THEN 1 ELSE rate_limits.count + 1 END,
			window_start = GREATEST(rate_limits.window_start, EXCLUDED.window_start)
		RETURNING window_start, count
	`, key, windowStart).Scan(&start, &count)
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", key, err)
	}

	if count <= l.limit {
		return true, 0, nil
	}
	retryAfter := start.Add(l.window).Sub(now)
	if retryAfter <= 0 {
		retryAfter = time.Second
	}
	return false, retryAfter, nil
}
