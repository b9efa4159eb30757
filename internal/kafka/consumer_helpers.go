package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/scheduler"
	"github.com/segmentio/kafka-go"
)

// handleMessage обрабатывает одно задание: true — задание завершено и оффсет можно коммитить.
func (c *Consumer) handleMessage(ctx context.Context, msg *kafka.Message, attempt int) bool {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.dispatcher.Dispatch(ctxTimeout, msg.Value)
	cancel()

	switch {
	case err == nil:
		return true
	case errors.Is(err, scheduler.ErrMalformedJob), errors.Is(err, scheduler.ErrUnknownHandler):
		// Повтор не поможет: логируем и коммитим
		c.log.Errorf(ctx, "job skipped offset=%d key=%s: %v", msg.Offset, msg.Key, err)
		return true
	default:
		// Временная ошибка (БД/сеть/таймаут): НЕ коммитим, повторяем это же задание
		c.log.Warnf(ctx, "job failed offset=%d key=%s attempt=%d: %v (will retry)", msg.Offset, msg.Key, attempt, err)
		return false
	}
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная. Баланс между стабильностью и случайностью.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
