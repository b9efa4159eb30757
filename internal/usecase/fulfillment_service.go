package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/ctxmeta"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
)

// Проверка, что FulfillmentService удовлетворяет интерфейсу WebhookService.
var _ ports.WebhookService = (*FulfillmentService)(nil)

// gatewayLimitKey — общий лимит запросов к провайдеру печати.
const gatewayLimitKey = "printful"

// FulfillmentConfig — тайминги конвейера.
type FulfillmentConfig struct {
	HoldDelay          time.Duration // окно отмены до подтверждения у провайдера
	ConfirmMaxAttempts int
	ConfirmRetryBase   time.Duration
	ConfirmRetryMax    time.Duration
	DraftClaimTimeout  time.Duration // после него незавершённый черновик без следа у провайдера считается несозданным
}

// FulfillmentService — оркестратор: оплата → черновик у провайдера → задержка → подтверждение/отмена.
// Каждый шаг перечитывает заказ из хранилища и завершается без действий, если заказ уже обработан.
type FulfillmentService struct {
	repo      ports.OrderRepository
	gateway   ports.FulfillmentGateway
	scheduler ports.Scheduler
	limiter   ports.RateLimiter
	log       ports.Logger
	cfg       FulfillmentConfig
}

// NewFulfillmentService — DI-конструктор. limiter может быть nil (без ограничения).
func NewFulfillmentService(
	repo ports.OrderRepository,
	gateway ports.FulfillmentGateway,
	scheduler ports.Scheduler,
	limiter ports.RateLimiter,
	log ports.Logger,
	cfg FulfillmentConfig,
) *FulfillmentService {
	if cfg.HoldDelay <= 0 {
		cfg.HoldDelay = 24 * time.Hour
	}
	if cfg.ConfirmMaxAttempts <= 0 {
		cfg.ConfirmMaxAttempts = 5
	}
	if cfg.ConfirmRetryBase <= 0 {
		cfg.ConfirmRetryBase = time.Minute
	}
	if cfg.ConfirmRetryMax <= 0 {
		cfg.ConfirmRetryMax = time.Hour
	}
	if cfg.DraftClaimTimeout <= 0 {
		cfg.DraftClaimTimeout = 5 * time.Minute
	}
	return &FulfillmentService{
		repo:      repo,
		gateway:   gateway,
		scheduler: scheduler,
		limiter:   limiter,
		log:       log,
		cfg:       cfg,
	}
}

// HandlePaymentEvent — реакция на проверенное событие Stripe.
// Ошибка возвращается только при сбое хранилища или планировщика: провайдер повторит доставку.
func (s *FulfillmentService) HandlePaymentEvent(ctx context.Context, event *domain.PaymentEvent) error {
	if event == nil {
		return nil
	}
	switch event.Type {
	case domain.PaymentEventCheckoutCompleted:
		if event.CheckoutCompleted == nil {
			return nil
		}
		return s.handleCheckoutCompleted(ctx, event.CheckoutCompleted)
	case domain.PaymentEventChargeRefunded:
		if event.ChargeRefunded == nil {
			return nil
		}
		return s.handleChargeRefunded(ctx, event.ChargeRefunded)
	default:
		s.log.Infof(ctx, "payment event ignored id=%s type=%s", event.ID, event.Type)
		return nil
	}
}

func (s *FulfillmentService) handleCheckoutCompleted(ctx context.Context, c *domain.CheckoutCompleted) error {
	if c.OrderID == "" {
		s.log.Infof(ctx, "checkout session %s has no order_id metadata, ignored", c.SessionID)
		return nil
	}
	ctx = ctxmeta.WithOrderID(ctx, c.OrderID)

	// сверка: сессия должна принадлежать заказу из metadata
	order, err := s.repo.FindBySessionID(ctx, c.SessionID)
	if err != nil {
		return fmt.Errorf("find order by session: %w", err)
	}
	if order == nil || order.ID != c.OrderID {
		s.log.Warnf(ctx, "checkout session %s does not match order, acknowledged without changes", c.SessionID)
		return nil
	}

	var addr domain.ShippingAddress
	if c.Shipping != nil {
		addr = *c.Shipping
	}

	changed, err := s.repo.MarkPaid(ctx, order.ID, addr, c.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	switch {
	case changed:
		metrics.OrderTransitions.WithLabelValues(string(domain.StatusPending), string(domain.StatusPaid)).Inc()
		s.log.Infof(ctx, "order paid payment_intent=%s", c.PaymentIntentID)
	case awaitingDraft(order):
		// прошлая доставка могла не поставить задание; лишнее задание отсечёт ClaimDraft
		s.log.Infof(ctx, "checkout completed again, draft not claimed yet, scheduling again")
	default:
		s.log.Infof(ctx, "checkout completed again for order in status %s, nothing to do", order.Status)
		return nil
	}

	if err := s.scheduler.ScheduleAfter(ctx, 0, domain.JobCreateDraft, domain.DraftJob{OrderID: order.ID}); err != nil {
		return fmt.Errorf("schedule draft: %w", err)
	}
	return nil
}

func (s *FulfillmentService) handleChargeRefunded(ctx context.Context, r *domain.ChargeRefunded) error {
	if !r.FullyRefunded {
		s.log.Infof(ctx, "partial refund payment_intent=%s ignored", r.PaymentIntentID)
		return nil
	}

	// Повторяем при конкурентной смене статуса (например, черновик создан в этот момент).
	for attempt := 0; attempt < 3; attempt++ {
		order, err := s.repo.FindByPaymentIntent(ctx, r.PaymentIntentID)
		if err != nil {
			return fmt.Errorf("find order by payment intent: %w", err)
		}
		if order == nil {
			s.log.Warnf(ctx, "refund for unknown payment_intent=%s", r.PaymentIntentID)
			return nil
		}
		ctx = ctxmeta.WithOrderID(ctx, order.ID)

		if !domain.CanTransition(order.Status, domain.StatusRefunded) {
			s.log.Infof(ctx, "refund ignored in status %s", order.Status)
			return nil
		}
		err = s.transition(ctx, order.ID, domain.StatusChange{Expected: order.Status, Next: domain.StatusRefunded})
		if errors.Is(err, domain.ErrStatusConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("refund payment_intent=%s: %w", r.PaymentIntentID, domain.ErrStatusConflict)
}

// HandleFulfillmentEvent — события Printful. Неизвестный заказ или тип подтверждаются без действий.
func (s *FulfillmentService) HandleFulfillmentEvent(ctx context.Context, event *domain.FulfillmentEvent) error {
	if event == nil || event.FulfillmentOrderID == "" {
		return nil
	}
	order, err := s.repo.FindByFulfillmentID(ctx, event.FulfillmentOrderID)
	if err != nil {
		return fmt.Errorf("find order by fulfillment id: %w", err)
	}
	if order == nil {
		s.log.Warnf(ctx, "fulfillment event %s for unknown order %s", event.Type, event.FulfillmentOrderID)
		return nil
	}
	ctx = ctxmeta.WithOrderID(ctx, order.ID)

	var change domain.StatusChange
	switch event.Type {
	case domain.FulfillmentEventPackageShipped:
		change = domain.StatusChange{Expected: order.Status, Next: domain.StatusShipped, Shipment: event.Shipment}
	case domain.FulfillmentEventOrderFailed:
		s.log.Errorf(ctx, "provider reported order failure: %s", event.Reason)
		change = domain.StatusChange{Expected: order.Status, Next: domain.StatusFailed}
	case domain.FulfillmentEventOrderCanceled:
		s.log.Warnf(ctx, "provider canceled order %s in status %s: %s", event.FulfillmentOrderID, order.Status, event.Reason)
		return nil
	default:
		return nil
	}

	if !domain.CanTransition(order.Status, change.Next) {
		s.log.Infof(ctx, "fulfillment event %s ignored in status %s", event.Type, order.Status)
		return nil
	}
	if err := s.transition(ctx, order.ID, change); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			s.log.Warnf(ctx, "fulfillment event %s lost status race: %v", event.Type, err)
			return nil
		}
		return err
	}
	return nil
}

// CreateDraftOrder — создаёт у провайдера черновик для оплаченного заказа и
// планирует подтверждение через HoldDelay.
func (s *FulfillmentService) CreateDraftOrder(ctx context.Context, job domain.DraftJob) error {
	ctx = ctxmeta.WithOrderID(ctx, job.OrderID)

	order, err := s.repo.GetByID(ctx, job.OrderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		s.log.Warnf(ctx, "draft job for missing order")
		return nil
	}
	if order.Status != domain.StatusPaid || order.FulfillmentOrderID != "" {
		s.log.Infof(ctx, "draft already handled, status=%s fulfillment_id=%s", order.Status, order.FulfillmentOrderID)
		return nil
	}

	if !hasShippingAddress(order) {
		return s.failOrder(ctx, order.ID, domain.StatusPaid,
			fmt.Errorf("%w: shipping address missing", domain.ErrPreconditionFailed))
	}
	lineItems, err := domain.BuildLineItems(order.Items)
	if err != nil {
		return s.failOrder(ctx, order.ID, domain.StatusPaid, err)
	}

	wait, err := s.throttle(ctx)
	if err != nil {
		return err
	}
	if wait > 0 {
		s.log.Infof(ctx, "gateway rate limited, draft rescheduled in %s", wait)
		return s.scheduler.ScheduleAfter(ctx, wait, domain.JobCreateDraft, job)
	}

	if order.DraftClaimedAt != nil {
		return s.reconcileDraft(ctx, order, job)
	}

	won, err := s.repo.ClaimDraft(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("claim draft: %w", err)
	}
	if !won {
		s.log.Infof(ctx, "draft claimed by another worker")
		return nil
	}

	fulfillmentID, err := s.gateway.CreateDraftOrder(ctx, *order.ShippingAddress, lineItems, order.ID)
	if err != nil {
		return s.failOrder(ctx, order.ID, domain.StatusPaid, fmt.Errorf("%w: %w", ErrDraftRejected, err))
	}
	s.log.Infof(ctx, "draft created fulfillment_id=%s", fulfillmentID)

	return s.recordDraft(ctx, order.ID, fulfillmentID, s.cfg.HoldDelay)
}

// reconcileDraft — черновик заявлен, но его ID не сохранён: прошлый запуск
// прервался после запроса к провайдеру или ещё идёт. Ищем черновик по external_id.
func (s *FulfillmentService) reconcileDraft(ctx context.Context, order *domain.Order, job domain.DraftJob) error {
	fulfillmentID, err := s.gateway.FindOrderByExternalID(ctx, order.ID)
	if err != nil {
		if isTemporary(err) {
			return fmt.Errorf("find draft by external id: %w", err)
		}
		return s.failOrder(ctx, order.ID, domain.StatusPaid, fmt.Errorf("%w: %w", ErrDraftRejected, err))
	}
	if fulfillmentID != "" {
		s.log.Warnf(ctx, "draft %s found at provider, recording it", fulfillmentID)
		return s.recordDraft(ctx, order.ID, fulfillmentID, s.remainingHold(order))
	}

	claimedFor := time.Since(*order.DraftClaimedAt)
	if claimedFor < s.cfg.DraftClaimTimeout {
		wait := s.cfg.DraftClaimTimeout - claimedFor
		s.log.Infof(ctx, "draft claimed %s ago and not found at provider, checking again in %s", claimedFor.Round(time.Second), wait.Round(time.Second))
		return s.scheduler.ScheduleAfter(ctx, wait, domain.JobCreateDraft, job)
	}
	return s.failOrder(ctx, order.ID, domain.StatusPaid,
		fmt.Errorf("%w: claimed %s ago, not found at provider", ErrDraftRejected, claimedFor.Round(time.Second)))
}

// recordDraft — ставит подтверждение и переводит заказ paid → fulfilling.
// Подтверждение планируется первым: после смены статуса повторный запуск задания уже ничего не делает.
func (s *FulfillmentService) recordDraft(ctx context.Context, orderID, fulfillmentID string, hold time.Duration) error {
	confirm := domain.ConfirmJob{OrderID: orderID, FulfillmentOrderID: fulfillmentID}
	if err := s.scheduler.ScheduleAfter(ctx, hold, domain.JobConfirmOrder, confirm); err != nil {
		return fmt.Errorf("schedule confirmation for draft %s: %w", fulfillmentID, err)
	}

	err := s.transition(ctx, orderID, domain.StatusChange{
		Expected:           domain.StatusPaid,
		Next:               domain.StatusFulfilling,
		FulfillmentOrderID: fulfillmentID,
	})
	if err == nil || !errors.Is(err, domain.ErrStatusConflict) {
		return err
	}

	current, loadErr := s.repo.GetByID(ctx, orderID)
	if loadErr != nil {
		return fmt.Errorf("reload order: %w", loadErr)
	}
	if current != nil && current.FulfillmentOrderID == fulfillmentID {
		s.log.Infof(ctx, "draft %s already recorded", fulfillmentID)
		return nil
	}
	// заказ успели вернуть: черновик не должен уйти в печать
	s.log.Warnf(ctx, "order changed while drafting, canceling draft %s", fulfillmentID)
	if cancelErr := s.gateway.CancelOrder(ctx, fulfillmentID); cancelErr != nil {
		s.log.Errorf(ctx, "cancel draft %s failed: %v", fulfillmentID, cancelErr)
	}
	return nil
}

// remainingHold — остаток окна удержания, отсчитанного от заявки на черновик.
func (s *FulfillmentService) remainingHold(order *domain.Order) time.Duration {
	if order.DraftClaimedAt == nil {
		return s.cfg.HoldDelay
	}
	if left := time.Until(order.DraftClaimedAt.Add(s.cfg.HoldDelay)); left > 0 {
		return left
	}
	return 0
}

// ConfirmOrder — по истечении HoldDelay подтверждает черновик или отменяет его,
// если заказ за это время вернули/провалили.
func (s *FulfillmentService) ConfirmOrder(ctx context.Context, job domain.ConfirmJob) error {
	ctx = ctxmeta.WithOrderID(ctx, job.OrderID)

	order, err := s.repo.GetByID(ctx, job.OrderID)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		s.log.Warnf(ctx, "confirm job for missing order")
		return nil
	}

	fulfillmentID := order.FulfillmentOrderID
	if fulfillmentID == "" {
		fulfillmentID = job.FulfillmentOrderID
	}

	switch order.Status {
	case domain.StatusRefunded, domain.StatusFailed:
		if fulfillmentID == "" {
			return nil
		}
		if err := s.gateway.CancelOrder(ctx, fulfillmentID); err != nil {
			s.log.Warnf(ctx, "cancel draft %s failed: %v", fulfillmentID, err)
			return nil
		}
		s.log.Infof(ctx, "draft %s canceled, order %s", fulfillmentID, order.Status)
		return nil
	}

	if order.ConfirmedAt != nil || order.Status != domain.StatusFulfilling {
		s.log.Infof(ctx, "confirmation not needed, status=%s", order.Status)
		return nil
	}

	wait, err := s.throttle(ctx)
	if err != nil {
		return err
	}
	if wait > 0 {
		s.log.Infof(ctx, "gateway rate limited, confirmation rescheduled in %s", wait)
		return s.scheduler.ScheduleAfter(ctx, wait, domain.JobConfirmOrder, job)
	}

	err = s.gateway.ConfirmOrder(ctx, fulfillmentID)
	if err == nil {
		if _, markErr := s.repo.MarkConfirmed(ctx, order.ID); markErr != nil {
			return fmt.Errorf("mark confirmed: %w", markErr)
		}
		s.log.Infof(ctx, "order confirmed fulfillment_id=%s", fulfillmentID)
		return nil
	}

	if isAlreadyFinalized(err) {
		s.log.Warnf(ctx, "draft %s already finalized at provider: %v", fulfillmentID, err)
		return nil
	}
	if isTemporary(err) && job.Attempt+1 < s.cfg.ConfirmMaxAttempts {
		next := job
		next.Attempt++
		delay := s.confirmBackoff(job.Attempt)
		s.log.Warnf(ctx, "confirmation attempt %d failed: %v (retry in %s)", next.Attempt, err, delay)
		return s.scheduler.ScheduleAfter(ctx, delay, domain.JobConfirmOrder, next)
	}

	s.log.Errorf(ctx, "confirmation of draft %s failed after %d attempts", fulfillmentID, job.Attempt+1)
	return s.failOrder(ctx, order.ID, domain.StatusFulfilling, fmt.Errorf("%w: %w", ErrConfirmRejected, err))
}

// HandleDraftJob — обработчик задания: ошибки, уже отражённые в статусе заказа, не ретраятся.
func (s *FulfillmentService) HandleDraftJob(ctx context.Context, job domain.DraftJob) error {
	return settled(s.CreateDraftOrder(ctx, job))
}

func (s *FulfillmentService) HandleConfirmJob(ctx context.Context, job domain.ConfirmJob) error {
	return settled(s.ConfirmOrder(ctx, job))
}

// settled — nil для ошибок, после которых заказ уже в failed.
func settled(err error) error {
	if errors.Is(err, domain.ErrPreconditionFailed) ||
		errors.Is(err, ErrDraftRejected) ||
		errors.Is(err, ErrConfirmRejected) {
		return nil
	}
	return err
}

// failOrder — переводит заказ в failed и возвращает cause.
// Сбой хранилища важнее cause: задание должно повториться.
func (s *FulfillmentService) failOrder(ctx context.Context, orderID string, expected domain.Status, cause error) error {
	s.log.Errorf(ctx, "order failed: %v", cause)
	err := s.transition(ctx, orderID, domain.StatusChange{Expected: expected, Next: domain.StatusFailed})
	switch {
	case errors.Is(err, domain.ErrStatusConflict):
		s.log.Warnf(ctx, "order left %s before it could be failed", expected)
	case err != nil:
		return fmt.Errorf("mark failed: %w", err)
	}
	return cause
}

func (s *FulfillmentService) transition(ctx context.Context, orderID string, change domain.StatusChange) error {
	if err := s.repo.UpdateStatus(ctx, orderID, change); err != nil {
		return fmt.Errorf("update status %s -> %s: %w", change.Expected, change.Next, err)
	}
	metrics.OrderTransitions.WithLabelValues(string(change.Expected), string(change.Next)).Inc()
	s.log.Infof(ctx, "order status %s -> %s", change.Expected, change.Next)
	return nil
}

// throttle — пауза до следующего окна лимитера; 0 — можно идти к провайдеру.
func (s *FulfillmentService) throttle(ctx context.Context) (time.Duration, error) {
	if s.limiter == nil {
		return 0, nil
	}
	allowed, retryAfter, err := s.limiter.TryAcquire(ctx, gatewayLimitKey)
	if err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}
	if allowed {
		return 0, nil
	}
	if retryAfter <= 0 {
		retryAfter = time.Second
	}
	return retryAfter, nil
}

// confirmBackoff — base * 2^attempt, не больше ConfirmRetryMax.
func (s *FulfillmentService) confirmBackoff(attempt int) time.Duration {
	delay := s.cfg.ConfirmRetryBase
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= s.cfg.ConfirmRetryMax {
			return s.cfg.ConfirmRetryMax
		}
	}
	return delay
}

// awaitingDraft — оплачен, но черновик ещё никто не заявлял.
func awaitingDraft(o *domain.Order) bool {
	return o.Status == domain.StatusPaid && o.DraftClaimedAt == nil && o.FulfillmentOrderID == ""
}

func hasShippingAddress(o *domain.Order) bool {
	a := o.ShippingAddress
	return a != nil && a.Address1 != "" && a.CountryCode != "" && a.Zip != ""
}
