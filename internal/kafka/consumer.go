package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу фонового воркера.
var _ ports.BackgroundWorker = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// jobDispatcher — разбирает конверт задания и вызывает зарегистрированный обработчик.
type jobDispatcher interface {
	Dispatch(ctx context.Context, raw []byte) error
}

// Consumer — обёртка над kafka.Reader + диспетчер заданий и логгер.
type Consumer struct {
	reader         reader
	dispatcher     jobDispatcher
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, dispatcher jobDispatcher, log ports.Logger) *Consumer {
	reader := kafka.NewReader(cfg.ReaderConfig())

	// Параметры по умолчанию (если не заданы в конфиге).
	// Таймаут обработки покрывает вызов провайдера (30s) с запасом.
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 45 * time.Second
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         reader,
		dispatcher:     dispatcher,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		// jitterRand — источник случайности, чтобы рассинхронизировать экспоненциальный backoff.
		jitterRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — основной цикл:
// 1) читаем задание без авто-коммита;
// 2) успешная обработка → CommitMessages;
// 3) битый конверт или неизвестный обработчик → лог и CommitMessages (пропускаем навсегда);
// 4) временная ошибка → повторяем это же задание с backoff, пока не выполнится
//    или не отменят контекст. Следующее сообщение партиции не читается, иначе
//    его коммит сдвинет оффсет за упавшее задание.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "job consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	// Экспоненциальный backoff на ошибках FetchMessage с equal-jitter
	retry := c.retryInitial

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Временная ошибка брокера/сети. Ожидаем и повторяем
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.JobsConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processUntilSettled(ctx, &msg) {
			// остановка посреди повторов: оффсет не коммитим, задание получит следующий consumer
			return ctx.Err()
		}
		c.commitSafely(ctx, &msg)
	}
}

// processUntilSettled — выполняет задание до успеха или постоянной ошибки.
// false — контекст отменён раньше.
func (c *Consumer) processUntilSettled(ctx context.Context, msg *kafka.Message) bool {
	backoff := c.retryInitial
	for attempt := 1; ; attempt++ {
		if c.handleMessage(ctx, msg, attempt) {
			return true
		}
		// Пауза с джиттером между повторами снижает нагрузку на внешние зависимости.
		if !c.sleepWithBackoff(ctx, c.withJitterEqual(backoff)) {
			return false
		}
		backoff = c.nextBackoff(backoff)
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
