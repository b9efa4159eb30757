package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что JobRepository удовлетворяет интерфейсу Scheduler.
var _ ports.Scheduler = (*JobRepository)(nil)

// JobRepository — durable-хранилище отложенных заданий (таблица scheduled_jobs).
// Запись переживает рестарт процесса; в Kafka задание попадает через релей.
type JobRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewJobRepository - конструктор JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool, now: time.Now}
}

// ScheduleAfter — сохраняет задание с моментом исполнения now+delay.
func (r *JobRepository) ScheduleAfter(ctx context.Context, delay time.Duration, handler string, payload any) error {
	if handler == "" {
		return errors.New("job handler is required")
	}
	if delay < 0 {
		delay = 0
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO scheduled_jobs (id, handler, payload, execute_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), handler, data, r.now().Add(delay).UTC()); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	metrics.JobsScheduled.WithLabelValues(handler).Inc()
	return nil
}

// DispatchDue — забирает наступившие задания (FOR UPDATE SKIP LOCKED), отдаёт их publish
// и помечает отправленными в той же транзакции. Ошибка publish — откат, задания останутся в очереди.
func (r *JobRepository) DispatchDue(ctx context.Context, limit int, publish func(context.Context, []domain.Job) error) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	rows, err := transaction.Query(ctx, `
		SELECT id, handler, payload, execute_at
		FROM scheduled_jobs
		WHERE dispatched_at IS NULL AND execute_at <= $1
		ORDER BY execute_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`, r.now().UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("select due jobs: %w", err)
	}

	var (
		jobs []domain.Job
		ids  []string
	)
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.Handler, &job.Payload, &job.ExecuteAt); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
		ids = append(ids, job.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("jobs rows: %w", err)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	if err := publish(ctx, jobs); err != nil {
		return 0, fmt.Errorf("publish jobs: %w", err)
	}

	if _, err := transaction.Exec(ctx, `
		UPDATE scheduled_jobs SET dispatched_at = now() WHERE id = ANY($1::text[])
	`, ids); err != nil {
		return 0, fmt.Errorf("mark dispatched: %w", err)
	}
	if err := transaction.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(jobs), nil
}

// PurgeDispatched — удаляет отправленные задания старше retention.
func (r *JobRepository) PurgeDispatched(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM scheduled_jobs
		WHERE dispatched_at IS NOT NULL AND dispatched_at < $1
	`, r.now().Add(-retention).UTC())
	if err != nil {
		return 0, fmt.Errorf("purge jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
