package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/gateway/printful"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports/mocks"
	memrepo "github.com/Gunvolt24/merch_fulfillment/internal/repo/memory"
	"github.com/Gunvolt24/merch_fulfillment/internal/usecase"
)

const holdDelay = 24 * time.Hour

type fixture struct {
	repo    *memrepo.OrderRepository
	gateway *mocks.MockFulfillmentGateway
	sched   *mocks.MockScheduler
	limiter *mocks.MockRateLimiter
	cfg     usecase.FulfillmentConfig
	svc     *usecase.FulfillmentService
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:    memrepo.NewOrderRepository(),
		gateway: mocks.NewMockFulfillmentGateway(ctrl),
		sched:   mocks.NewMockScheduler(ctrl),
		limiter: mocks.NewMockRateLimiter(ctrl),
		cfg: usecase.FulfillmentConfig{
			HoldDelay:          holdDelay,
			ConfirmMaxAttempts: 3,
			ConfirmRetryBase:   time.Minute,
			ConfirmRetryMax:    10 * time.Minute,
			DraftClaimTimeout:  10 * time.Minute,
		},
	}
	f.rebuild(f.repo)
	return f
}

// rebuild — пересобирает сервис над другим хранилищем или с изменённым f.cfg.
func (f *fixture) rebuild(repo ports.OrderRepository) {
	f.svc = usecase.NewFulfillmentService(repo, f.gateway, f.sched, f.limiter, noopLogger{}, f.cfg)
}

// flakyStatusRepo — первые failures вызовов UpdateStatus падают сбоем хранилища.
type flakyStatusRepo struct {
	*memrepo.OrderRepository
	failures int
}

func (r *flakyStatusRepo) UpdateStatus(ctx context.Context, orderID string, change domain.StatusChange) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("connection reset by peer")
	}
	return r.OrderRepository.UpdateStatus(ctx, orderID, change)
}

func (f *fixture) allowGateway() {
	f.limiter.EXPECT().TryAcquire(gomock.Any(), "printful").Return(true, time.Duration(0), nil).AnyTimes()
}

func checkoutCompleted(orderID, sessionID string) *domain.PaymentEvent {
	addr := testAddress
	return &domain.PaymentEvent{
		ID:   "evt_" + orderID,
		Type: domain.PaymentEventCheckoutCompleted,
		CheckoutCompleted: &domain.CheckoutCompleted{
			SessionID:       sessionID,
			OrderID:         orderID,
			PaymentIntentID: "pi_" + orderID,
			Shipping:        &addr,
		},
	}
}

// Повторный checkout.session.completed — одно изменение статуса и один черновик у провайдера,
// даже если до заявки черновика задание поставлено дважды
func TestHandlePaymentEvent_CheckoutCompletedTwice_OneDraft(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := pendingOrder(t, f.repo, tee("M", 1))
	draft := domain.DraftJob{OrderID: id}

	f.sched.EXPECT().ScheduleAfter(gomock.Any(), time.Duration(0), domain.JobCreateDraft, draft).Return(nil).Times(2)

	for i := 0; i < 2; i++ {
		if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_"+id)); err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
	}

	got := mustGet(t, f.repo, id)
	if got.Status != domain.StatusPaid {
		t.Fatalf("want paid, got %s", got.Status)
	}
	if got.ShippingAddress == nil || *got.ShippingAddress != testAddress {
		t.Fatalf("shipping address not stored: %+v", got.ShippingAddress)
	}
	if got.PaymentIntentID != "pi_"+id {
		t.Fatalf("payment intent not stored: %q", got.PaymentIntentID)
	}

	// оба задания выполняются, черновик создаётся один раз
	f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), gomock.Any(), gomock.Any(), id).Return("E1", nil).Times(1)
	f.sched.EXPECT().ScheduleAfter(gomock.Any(), holdDelay, domain.JobConfirmOrder, gomock.Any()).Return(nil).Times(1)
	for i := 0; i < 2; i++ {
		if err := f.svc.HandleDraftJob(context.Background(), draft); err != nil {
			t.Fatalf("draft job %d: %v", i, err)
		}
	}

	// после черновика повторная доставка ничего не планирует
	if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_"+id)); err != nil {
		t.Fatalf("late duplicate: %v", err)
	}
}

// Сессия от другого заказа — подтверждаем без изменений
func TestHandlePaymentEvent_SessionMismatch_Acknowledged(t *testing.T) {
	f := newFixture(t)
	id := pendingOrder(t, f.repo, tee("M", 1))
	other := pendingOrder(t, f.repo, tee("L", 1))

	if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_"+other)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_unknown")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, oid := range []string{id, other} {
		if st := mustGet(t, f.repo, oid).Status; st != domain.StatusPending {
			t.Fatalf("order %s must stay pending, got %s", oid, st)
		}
	}
}

// Сбой планировщика — ошибка вебхука; повторная доставка ставит задание заново
func TestHandlePaymentEvent_ScheduleFailure_RedeliveryReschedules(t *testing.T) {
	f := newFixture(t)
	id := pendingOrder(t, f.repo, tee("M", 1))
	draft := domain.DraftJob{OrderID: id}

	gomock.InOrder(
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), time.Duration(0), domain.JobCreateDraft, draft).
			Return(errors.New("db down")),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), time.Duration(0), domain.JobCreateDraft, draft).
			Return(nil),
	)

	if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_"+id)); err == nil {
		t.Fatalf("scheduling failure must be reported so the provider redelivers")
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusPaid {
		t.Fatalf("want paid, got %s", st)
	}

	if err := f.svc.HandlePaymentEvent(context.Background(), checkoutCompleted(id, "cs_"+id)); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
}

func TestHandlePaymentEvent_EventsWithoutOrderAreIgnored(t *testing.T) {
	f := newFixture(t)

	events := []*domain.PaymentEvent{
		nil,
		{Type: "payment_intent.created"},
		{Type: domain.PaymentEventCheckoutCompleted, CheckoutCompleted: &domain.CheckoutCompleted{SessionID: "cs_x"}},
		{Type: domain.PaymentEventChargeRefunded, ChargeRefunded: &domain.ChargeRefunded{PaymentIntentID: "pi_x", FullyRefunded: true}},
	}
	for i, ev := range events {
		if err := f.svc.HandlePaymentEvent(context.Background(), ev); err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
	}
}

func TestHandlePaymentEvent_FullRefund(t *testing.T) {
	f := newFixture(t)
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	partial := pendingOrder(t, f.repo, tee("S", 1))
	if _, err := f.repo.MarkPaid(context.Background(), partial, testAddress, "pi_partial"); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	refund := &domain.PaymentEvent{
		Type:           domain.PaymentEventChargeRefunded,
		ChargeRefunded: &domain.ChargeRefunded{PaymentIntentID: "pi_" + id, FullyRefunded: true},
	}
	if err := f.svc.HandlePaymentEvent(context.Background(), refund); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusRefunded {
		t.Fatalf("want refunded, got %s", st)
	}

	// повторная доставка — без ошибок
	if err := f.svc.HandlePaymentEvent(context.Background(), refund); err != nil {
		t.Fatalf("duplicate refund: %v", err)
	}

	partialRefund := &domain.PaymentEvent{
		Type:           domain.PaymentEventChargeRefunded,
		ChargeRefunded: &domain.ChargeRefunded{PaymentIntentID: "pi_partial", FullyRefunded: false},
	}
	if err := f.svc.HandlePaymentEvent(context.Background(), partialRefund); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := mustGet(t, f.repo, partial).Status; st != domain.StatusPaid {
		t.Fatalf("partial refund must not change status, got %s", st)
	}
}

// Размер M ×2 → одна позиция с variant 4017, подтверждение через 24ч
func TestCreateDraftOrder_BuildsDraftAndSchedulesConfirm(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 2))

	wantItems := []domain.FulfillmentLineItem{{VariantID: 4017, Quantity: 2, FileURL: "https://cdn.example.com/tee.png"}}
	gomock.InOrder(
		f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), testAddress, wantItems, id).Return("E1", nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), holdDelay, domain.JobConfirmOrder,
			domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}).Return(nil),
	)

	if err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustGet(t, f.repo, id)
	if got.Status != domain.StatusFulfilling || got.FulfillmentOrderID != "E1" {
		t.Fatalf("want fulfilling/E1, got %s/%s", got.Status, got.FulfillmentOrderID)
	}

	// повторная доставка задания — без вызовов провайдера
	if err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("redelivery: %v", err)
	}
}

// Неизвестный размер — failed без единого вызова провайдера
func TestCreateDraftOrder_UnknownSize_FailsWithoutGatewayCalls(t *testing.T) {
	f := newFixture(t)
	id := paidOrder(t, f.repo, testAddress, tee("M", 1), tee("4XL", 1))

	err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id})
	if !errors.Is(err, domain.ErrUnknownVariant) {
		t.Fatalf("want ErrUnknownVariant, got %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusFailed {
		t.Fatalf("want failed, got %s", st)
	}

	// обработчик задания не просит повторной доставки
	if err := f.svc.HandleDraftJob(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("job handler must settle: %v", err)
	}
}

func TestCreateDraftOrder_MissingAddress_PreconditionFailed(t *testing.T) {
	f := newFixture(t)
	id := paidOrder(t, f.repo, domain.ShippingAddress{}, tee("M", 1))

	err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id})
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Fatalf("want ErrPreconditionFailed, got %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusFailed {
		t.Fatalf("want failed, got %s", st)
	}
}

// Ошибка провайдера — failed, задание не ретраится
func TestCreateDraftOrder_GatewayError_MarksFailed(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))

	f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), gomock.Any(), gomock.Any(), id).
		Return("", &printful.GatewayError{Op: "create draft", Status: 400, Body: `{"error":"bad recipient"}`})

	if err := f.svc.HandleDraftJob(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("job handler must settle: %v", err)
	}
	got := mustGet(t, f.repo, id)
	if got.Status != domain.StatusFailed {
		t.Fatalf("want failed, got %s", got.Status)
	}
	if got.DraftClaimedAt == nil {
		t.Fatalf("draft claim must be recorded")
	}
}

func TestCreateDraftOrder_RateLimited_Reschedules(t *testing.T) {
	f := newFixture(t)
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))

	f.limiter.EXPECT().TryAcquire(gomock.Any(), "printful").Return(false, 30*time.Second, nil)
	f.sched.EXPECT().ScheduleAfter(gomock.Any(), 30*time.Second, domain.JobCreateDraft, domain.DraftJob{OrderID: id}).Return(nil)

	if err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustGet(t, f.repo, id)
	if got.Status != domain.StatusPaid || got.DraftClaimedAt != nil {
		t.Fatalf("throttled order must stay unclaimed: %s claimed=%v", got.Status, got.DraftClaimedAt)
	}
}

// Возврат во время создания черновика — черновик отменяется
func TestCreateDraftOrder_RefundRace_CancelsDraft(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))

	f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), gomock.Any(), gomock.Any(), id).
		DoAndReturn(func(ctx context.Context, _ domain.ShippingAddress, _ []domain.FulfillmentLineItem, _ string) (string, error) {
			if err := f.repo.UpdateStatus(ctx, id, domain.StatusChange{Expected: domain.StatusPaid, Next: domain.StatusRefunded}); err != nil {
				t.Fatalf("refund: %v", err)
			}
			return "E7", nil
		})
	f.sched.EXPECT().ScheduleAfter(gomock.Any(), holdDelay, domain.JobConfirmOrder, gomock.Any()).Return(nil)
	f.gateway.EXPECT().CancelOrder(gomock.Any(), "E7").Return(nil)

	if err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusRefunded {
		t.Fatalf("want refunded, got %s", st)
	}
}

// Черновик создан, но статус не записан — задание повторяется и находит черновик по external_id
func TestCreateDraftOrder_StatusUpdateFailure_ResumesFromProvider(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	f.rebuild(&flakyStatusRepo{OrderRepository: f.repo, failures: 1})
	job := domain.DraftJob{OrderID: id}

	var resumedHold time.Duration
	gomock.InOrder(
		f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), gomock.Any(), gomock.Any(), id).Return("E1", nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), holdDelay, domain.JobConfirmOrder,
			domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}).Return(nil),
		f.gateway.EXPECT().FindOrderByExternalID(gomock.Any(), id).Return("E1", nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), gomock.Any(), domain.JobConfirmOrder,
			domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}).
			DoAndReturn(func(_ context.Context, d time.Duration, _ string, _ any) error {
				resumedHold = d
				return nil
			}),
	)

	if err := f.svc.HandleDraftJob(context.Background(), job); err == nil {
		t.Fatalf("store failure must be retried")
	}
	got := mustGet(t, f.repo, id)
	if got.Status != domain.StatusPaid || got.DraftClaimedAt == nil || got.FulfillmentOrderID != "" {
		t.Fatalf("want claimed paid order without draft id, got %s claimed=%v id=%q", got.Status, got.DraftClaimedAt, got.FulfillmentOrderID)
	}

	if err := f.svc.HandleDraftJob(context.Background(), job); err != nil {
		t.Fatalf("retry: %v", err)
	}
	got = mustGet(t, f.repo, id)
	if got.Status != domain.StatusFulfilling || got.FulfillmentOrderID != "E1" {
		t.Fatalf("want fulfilling/E1, got %s/%s", got.Status, got.FulfillmentOrderID)
	}
	if resumedHold <= 0 || resumedHold > holdDelay {
		t.Fatalf("hold must be counted from the claim, got %s", resumedHold)
	}
}

// Подтверждение не поставлено — задание повторяется, заказ не остаётся без подтверждения
func TestCreateDraftOrder_ConfirmScheduleFailure_Retried(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	job := domain.DraftJob{OrderID: id}
	confirm := domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}

	gomock.InOrder(
		f.gateway.EXPECT().CreateDraftOrder(gomock.Any(), gomock.Any(), gomock.Any(), id).Return("E1", nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), holdDelay, domain.JobConfirmOrder, confirm).
			Return(errors.New("db down")),
		f.gateway.EXPECT().FindOrderByExternalID(gomock.Any(), id).Return("E1", nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), gomock.Any(), domain.JobConfirmOrder, confirm).Return(nil),
	)

	if err := f.svc.HandleDraftJob(context.Background(), job); err == nil {
		t.Fatalf("scheduling failure must be retried")
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusPaid {
		t.Fatalf("order must not advance without a scheduled confirmation, got %s", st)
	}

	if err := f.svc.HandleDraftJob(context.Background(), job); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := mustGet(t, f.repo, id); got.Status != domain.StatusFulfilling || got.FulfillmentOrderID != "E1" {
		t.Fatalf("want fulfilling/E1, got %s/%s", got.Status, got.FulfillmentOrderID)
	}
}

// Заявка свежая, черновика у провайдера нет — проверка откладывается до истечения заявки
func TestCreateDraftOrder_ClaimedDraftNotFound_ChecksAgainLater(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	if _, err := f.repo.ClaimDraft(context.Background(), id); err != nil {
		t.Fatalf("claim: %v", err)
	}
	job := domain.DraftJob{OrderID: id}

	f.gateway.EXPECT().FindOrderByExternalID(gomock.Any(), id).Return("", nil)
	f.sched.EXPECT().ScheduleAfter(gomock.Any(), gomock.Any(), domain.JobCreateDraft, job).
		DoAndReturn(func(_ context.Context, d time.Duration, _ string, _ any) error {
			if d <= 0 || d > f.cfg.DraftClaimTimeout {
				t.Errorf("recheck delay out of range: %s", d)
			}
			return nil
		})

	if err := f.svc.HandleDraftJob(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusPaid {
		t.Fatalf("want paid, got %s", st)
	}
}

// Заявка просрочена, черновика нет — failed, запись о сбое остаётся в статусе
func TestCreateDraftOrder_StaleClaimNotFound_MarksFailed(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	f.cfg.DraftClaimTimeout = time.Nanosecond
	f.rebuild(f.repo)
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	if _, err := f.repo.ClaimDraft(context.Background(), id); err != nil {
		t.Fatalf("claim: %v", err)
	}

	f.gateway.EXPECT().FindOrderByExternalID(gomock.Any(), id).Return("", nil)

	err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: id})
	if !errors.Is(err, usecase.ErrDraftRejected) {
		t.Fatalf("want ErrDraftRejected, got %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusFailed {
		t.Fatalf("want failed, got %s", st)
	}
}

// Провайдер недоступен при поиске — временная ошибка, статус не меняется
func TestCreateDraftOrder_ReconcileLookupUnavailable_Retried(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := paidOrder(t, f.repo, testAddress, tee("M", 1))
	if _, err := f.repo.ClaimDraft(context.Background(), id); err != nil {
		t.Fatalf("claim: %v", err)
	}

	f.gateway.EXPECT().FindOrderByExternalID(gomock.Any(), id).
		Return("", &printful.GatewayError{Op: "find_order", Status: 503})

	if err := f.svc.HandleDraftJob(context.Background(), domain.DraftJob{OrderID: id}); err == nil {
		t.Fatalf("unavailable provider must be retried")
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusPaid {
		t.Fatalf("want paid, got %s", st)
	}
}

func TestCreateDraftOrder_MissingOrderIsNoop(t *testing.T) {
	f := newFixture(t)
	if err := f.svc.CreateDraftOrder(context.Background(), domain.DraftJob{OrderID: "nope"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Возврат до подтверждения — отмена черновика, ConfirmOrder не вызывается
func TestConfirmOrder_RefundedBeforeConfirmation_CancelsDraft(t *testing.T) {
	f := newFixture(t)
	id := draftedOrder(t, f.repo, "E1")
	if err := f.repo.UpdateStatus(context.Background(), id, domain.StatusChange{
		Expected: domain.StatusFulfilling, Next: domain.StatusRefunded,
	}); err != nil {
		t.Fatalf("refund: %v", err)
	}

	f.gateway.EXPECT().CancelOrder(gomock.Any(), "E1").Return(nil)

	if err := f.svc.ConfirmOrder(context.Background(), domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfirmOrder_CancelErrorIsOnlyLogged(t *testing.T) {
	f := newFixture(t)
	id := draftedOrder(t, f.repo, "E2")
	if err := f.repo.UpdateStatus(context.Background(), id, domain.StatusChange{
		Expected: domain.StatusFulfilling, Next: domain.StatusFailed,
	}); err != nil {
		t.Fatalf("fail: %v", err)
	}

	f.gateway.EXPECT().CancelOrder(gomock.Any(), "E2").Return(&printful.GatewayError{Op: "cancel", Status: 500})

	if err := f.svc.ConfirmOrder(context.Background(), domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E2"}); err != nil {
		t.Fatalf("cancel failure must not fail the job: %v", err)
	}
}

// Подтверждение дважды — второй запуск ничего не делает
func TestConfirmOrder_Twice_SecondRunIsNoop(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := draftedOrder(t, f.repo, "E1")
	job := domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}

	f.gateway.EXPECT().ConfirmOrder(gomock.Any(), "E1").Return(nil).Times(1)

	for i := 0; i < 2; i++ {
		if err := f.svc.ConfirmOrder(context.Background(), job); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}
	got := mustGet(t, f.repo, id)
	if got.ConfirmedAt == nil || got.Status != domain.StatusFulfilling {
		t.Fatalf("want confirmed fulfilling order, got %s confirmed=%v", got.Status, got.ConfirmedAt)
	}
}

// Провайдер говорит «уже подтверждён» — заказ не уходит в failed
func TestConfirmOrder_AlreadyFinalized_NotEscalated(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := draftedOrder(t, f.repo, "E1")

	f.gateway.EXPECT().ConfirmOrder(gomock.Any(), "E1").
		Return(&printful.GatewayError{Op: "confirm", Status: 400, Body: `{"error":{"message":"Order is not a draft"}}`})

	if err := f.svc.ConfirmOrder(context.Background(), domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusFulfilling {
		t.Fatalf("want fulfilling, got %s", st)
	}
}

// Временная ошибка — повтор с экспоненциальной паузой, после лимита — failed
func TestConfirmOrder_TemporaryError_RetriesThenFails(t *testing.T) {
	f := newFixture(t)
	f.allowGateway()
	id := draftedOrder(t, f.repo, "E1")
	unavailable := &printful.GatewayError{Op: "confirm", Status: 503}

	f.gateway.EXPECT().ConfirmOrder(gomock.Any(), "E1").Return(unavailable).Times(3)
	gomock.InOrder(
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), time.Minute, domain.JobConfirmOrder,
			domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1", Attempt: 1}).Return(nil),
		f.sched.EXPECT().ScheduleAfter(gomock.Any(), 2*time.Minute, domain.JobConfirmOrder,
			domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1", Attempt: 2}).Return(nil),
	)

	for attempt := 0; attempt < 2; attempt++ {
		job := domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1", Attempt: attempt}
		if err := f.svc.ConfirmOrder(context.Background(), job); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", attempt, err)
		}
	}

	err := f.svc.ConfirmOrder(context.Background(), domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1", Attempt: 2})
	if !errors.Is(err, usecase.ErrConfirmRejected) {
		t.Fatalf("want ErrConfirmRejected, got %v", err)
	}
	if st := mustGet(t, f.repo, id).Status; st != domain.StatusFailed {
		t.Fatalf("want failed, got %s", st)
	}
}

func TestConfirmOrder_ShippedOrderIsNoop(t *testing.T) {
	f := newFixture(t)
	id := draftedOrder(t, f.repo, "E1")
	if err := f.repo.UpdateStatus(context.Background(), id, domain.StatusChange{
		Expected: domain.StatusFulfilling, Next: domain.StatusShipped,
	}); err != nil {
		t.Fatalf("ship: %v", err)
	}

	if err := f.svc.HandleConfirmJob(context.Background(), domain.ConfirmJob{OrderID: id, FulfillmentOrderID: "E1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleFulfillmentEvent(t *testing.T) {
	f := newFixture(t)
	shipped := draftedOrder(t, f.repo, "E-ship")
	failed := draftedOrder(t, f.repo, "E-fail")
	canceled := draftedOrder(t, f.repo, "E-cancel")

	events := []*domain.FulfillmentEvent{
		{
			Type:               domain.FulfillmentEventPackageShipped,
			FulfillmentOrderID: "E-ship",
			Shipment:           &domain.Shipment{Carrier: "USPS", TrackingNumber: "9400"},
		},
		{Type: domain.FulfillmentEventOrderFailed, FulfillmentOrderID: "E-fail", Reason: "file rejected"},
		{Type: domain.FulfillmentEventOrderCanceled, FulfillmentOrderID: "E-cancel"},
		{Type: "stock_updated", FulfillmentOrderID: "E-ship"},
		{Type: domain.FulfillmentEventPackageShipped, FulfillmentOrderID: "E-unknown"},
		// дубликат после отправки
		{Type: domain.FulfillmentEventPackageShipped, FulfillmentOrderID: "E-ship"},
	}
	for i, ev := range events {
		if err := f.svc.HandleFulfillmentEvent(context.Background(), ev); err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
	}

	got := mustGet(t, f.repo, shipped)
	if got.Status != domain.StatusShipped || got.Shipment == nil || got.Shipment.TrackingNumber != "9400" {
		t.Fatalf("want shipped with tracking, got %s %+v", got.Status, got.Shipment)
	}
	if st := mustGet(t, f.repo, failed).Status; st != domain.StatusFailed {
		t.Fatalf("want failed, got %s", st)
	}
	if st := mustGet(t, f.repo, canceled).Status; st != domain.StatusFulfilling {
		t.Fatalf("order_canceled must only be logged, got %s", st)
	}
}
