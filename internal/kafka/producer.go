package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/segmentio/kafka-go"
)

// writer — контракт над kafka.Writer (подменяется в тестах).
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer — публикует конверты заданий в топик; ключ сообщения — id задания.
type Producer struct {
	writer    writer
	closeOnce sync.Once
}

func NewProducer(cfg *ProducerConfig) *Producer {
	return &Producer{writer: cfg.Writer()}
}

// Publish — пачка заданий одним вызовом WriteMessages.
func (p *Producer) Publish(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(jobs))
	for _, job := range jobs {
		data, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshal job %s: %w", job.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(job.ID),
			Value: data,
			Headers: []kafka.Header{
				{Key: "handler", Value: []byte(job.Handler)},
			},
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}
