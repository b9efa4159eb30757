package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
)

// Проверка, что Relay удовлетворяет интерфейсу фонового воркера.
var _ ports.BackgroundWorker = (*Relay)(nil)

// jobStore — хранилище отложенных заданий (Postgres).
type jobStore interface {
	DispatchDue(ctx context.Context, limit int, publish func(context.Context, []domain.Job) error) (int, error)
	PurgeDispatched(ctx context.Context, retention time.Duration) (int64, error)
}

// jobPublisher — публикация наступивших заданий (Kafka producer).
type jobPublisher interface {
	Publish(ctx context.Context, jobs []domain.Job) error
	Close() error
}

// RelayConfig — параметры опроса таблицы заданий.
type RelayConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	Retention     time.Duration // сколько хранить отправленные задания
	PurgeInterval time.Duration
}

// Relay — переносит наступившие задания из Postgres в Kafka.
// Задание помечается отправленным только после успешной публикации.
type Relay struct {
	store     jobStore
	publisher jobPublisher
	log       ports.Logger
	cfg       RelayConfig
	closeOnce sync.Once
}

func NewRelay(cfg RelayConfig, store jobStore, publisher jobPublisher, log ports.Logger) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.PurgeInterval <= 0 {
		cfg.PurgeInterval = time.Hour
	}
	return &Relay{store: store, publisher: publisher, log: log, cfg: cfg}
}

// Run — цикл опроса до отмены контекста.
func (r *Relay) Run(ctx context.Context) error {
	r.log.Infof(ctx, "job relay started poll=%s batch=%d", r.cfg.PollInterval, r.cfg.BatchSize)

	poll := time.NewTicker(r.cfg.PollInterval)
	defer poll.Stop()
	purge := time.NewTicker(r.cfg.PurgeInterval)
	defer purge.Stop()

	for {
		r.drain(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-purge.C:
			r.purge(ctx)
		case <-poll.C:
		}
	}
}

// drain — публикует пачки, пока очередь наступивших заданий не опустеет.
func (r *Relay) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := r.store.DispatchDue(ctx, r.cfg.BatchSize, r.publisher.Publish)
		if err != nil {
			if ctx.Err() == nil {
				r.log.Warnf(ctx, "relay dispatch failed: %v", err)
			}
			return
		}
		if n > 0 {
			metrics.JobsDispatched.Add(float64(n))
		}
		if n < r.cfg.BatchSize {
			return
		}
	}
}

func (r *Relay) purge(ctx context.Context) {
	n, err := r.store.PurgeDispatched(ctx, r.cfg.Retention)
	if err != nil {
		r.log.Warnf(ctx, "relay purge failed: %v", err)
		return
	}
	if n > 0 {
		r.log.Infof(ctx, "relay purged %d dispatched jobs", n)
	}
}

// Close — закрывает publisher.
func (r *Relay) Close() (retErr error) {
	r.closeOnce.Do(func() {
		retErr = r.publisher.Close()
	})
	return retErr
}
