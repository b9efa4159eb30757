// Пакет scheduler — исполнение отложенных заданий: релей из Postgres в Kafka
// и диспетчер, который по имени обработчика вызывает нужный код.
package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/ctxmeta"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"github.com/Gunvolt24/merch_fulfillment/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrMalformedJob — конверт или нагрузка задания не разбираются; повтор не поможет.
	ErrMalformedJob = errors.New("malformed job")
	// ErrUnknownHandler — для задания нет зарегистрированного обработчика.
	ErrUnknownHandler = errors.New("unknown job handler")
)

// HandlerFunc — обработчик задания. Ошибка означает «доставить повторно».
type HandlerFunc func(ctx context.Context, payload []byte) error

// Handle — обработчик с типизированной нагрузкой; битый JSON → ErrMalformedJob.
func Handle[T any](fn func(ctx context.Context, payload T) error) HandlerFunc {
	return func(ctx context.Context, raw []byte) error {
		var payload T
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("%w: decode payload: %w", ErrMalformedJob, err)
		}
		return fn(ctx, payload)
	}
}

// Dispatcher — реестр обработчиков по имени задания.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	log      ports.Logger
}

func NewDispatcher(log ports.Logger) *Dispatcher {
	return &Dispatcher{handlers: make(map[string]HandlerFunc), log: log}
}

// Register — повторная регистрация заменяет обработчик.
func (d *Dispatcher) Register(name string, handler HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = handler
}

// Dispatch — разбирает конверт domain.Job и вызывает обработчик.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) error {
	var job domain.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		metrics.JobsFailed.WithLabelValues("unknown", "permanent").Inc()
		return fmt.Errorf("%w: %w", ErrMalformedJob, err)
	}
	if job.Handler == "" {
		metrics.JobsFailed.WithLabelValues("unknown", "permanent").Inc()
		return fmt.Errorf("%w: empty handler (id=%s)", ErrMalformedJob, job.ID)
	}

	d.mu.RLock()
	handler, ok := d.handlers[job.Handler]
	d.mu.RUnlock()
	if !ok {
		metrics.JobsFailed.WithLabelValues(job.Handler, "permanent").Inc()
		return fmt.Errorf("%w: %s", ErrUnknownHandler, job.Handler)
	}

	ctx = ctxmeta.WithJobID(ctx, job.ID)
	ctx, span := telemetry.Tracer().Start(ctx, "job "+job.Handler,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("job.id", job.ID),
			attribute.String("job.handler", job.Handler),
		),
	)
	defer span.End()

	if err := handler(ctx, job.Payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		kind := "transient"
		if errors.Is(err, ErrMalformedJob) {
			kind = "permanent"
		}
		metrics.JobsFailed.WithLabelValues(job.Handler, kind).Inc()
		return fmt.Errorf("job %s (%s): %w", job.ID, job.Handler, err)
	}

	metrics.JobsProcessed.WithLabelValues(job.Handler).Inc()
	return nil
}
