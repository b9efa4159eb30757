package scheduler_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/scheduler"
	"github.com/Gunvolt24/merch_fulfillment/pkg/ctxmeta"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func envelope(t *testing.T, id, handler string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(domain.Job{ID: id, Handler: handler, Payload: data})
	if err != nil {
		t.Fatalf("marshal job: %v", err)
	}
	return raw
}

// Обработчик получает типизированную нагрузку и job_id в контексте
func TestDispatch_CallsRegisteredHandler(t *testing.T) {
	t.Parallel()

	d := scheduler.NewDispatcher(nopLogger{})

	var (
		got   domain.ConfirmJob
		jobID string
	)
	d.Register(domain.JobConfirmOrder, scheduler.Handle(func(ctx context.Context, p domain.ConfirmJob) error {
		got = p
		jobID, _ = ctxmeta.JobIDFromContext(ctx)
		return nil
	}))

	raw := envelope(t, "j1", domain.JobConfirmOrder, domain.ConfirmJob{OrderID: "o1", FulfillmentOrderID: "E1", Attempt: 2})
	if err := d.Dispatch(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.OrderID != "o1" || got.FulfillmentOrderID != "E1" || got.Attempt != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if jobID != "j1" {
		t.Fatalf("job_id in context: want j1, got %q", jobID)
	}
}

func TestDispatch_PermanentErrors(t *testing.T) {
	t.Parallel()

	d := scheduler.NewDispatcher(nopLogger{})
	d.Register(domain.JobCreateDraft, scheduler.Handle(func(context.Context, domain.DraftJob) error {
		t.Fatalf("handler must not be called")
		return nil
	}))

	badPayload, _ := json.Marshal(domain.Job{ID: "j3", Handler: domain.JobCreateDraft, Payload: json.RawMessage(`"str"`)})

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"not json", []byte("{oops"), scheduler.ErrMalformedJob},
		{"empty handler", []byte(`{"id":"j2","payload":{}}`), scheduler.ErrMalformedJob},
		{"unknown handler", envelope(t, "j4", "nope", struct{}{}), scheduler.ErrUnknownHandler},
		{"payload type mismatch", badPayload, scheduler.ErrMalformedJob},
	}
	for _, tt := range tests {
		if err := d.Dispatch(context.Background(), tt.raw); !errors.Is(err, tt.want) {
			t.Fatalf("%s: want %v, got %v", tt.name, tt.want, err)
		}
	}
}

// Ошибка обработчика прокидывается наружу (временная → повторная доставка)
func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	d := scheduler.NewDispatcher(nopLogger{})
	d.Register(domain.JobCreateDraft, func(context.Context, []byte) error { return boom })

	err := d.Dispatch(context.Background(), envelope(t, "j5", domain.JobCreateDraft, domain.DraftJob{OrderID: "o5"}))
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped handler error, got %v", err)
	}
	if errors.Is(err, scheduler.ErrMalformedJob) || errors.Is(err, scheduler.ErrUnknownHandler) {
		t.Fatalf("handler error must stay transient: %v", err)
	}
}
