package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/pkg/ctxmeta"
)

// Проверка, что CheckoutService удовлетворяет интерфейсу CheckoutService.
var _ ports.CheckoutService = (*CheckoutService)(nil)

// CheckoutService — создаёт pending-заказ и платёжную сессию к нему.
type CheckoutService struct {
	repo      ports.OrderRepository
	sessions  ports.CheckoutSessionCreator
	validator ports.CheckoutValidator
	log       ports.Logger
}

func NewCheckoutService(
	repo ports.OrderRepository,
	sessions ports.CheckoutSessionCreator,
	validator ports.CheckoutValidator,
	log ports.Logger,
) *CheckoutService {
	return &CheckoutService{repo: repo, sessions: sessions, validator: validator, log: log}
}

// StartCheckout — валидация корзины, заказ в pending, сессия Stripe, привязка сессии к заказу.
// Ошибки валидации возвращаются как есть (validate.ErrInvalidCheckout).
func (s *CheckoutService) StartCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutResult, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, err
	}

	total := domain.TotalAmount(req.Items)
	orderID, err := s.repo.CreatePending(ctx, req.UserID, req.Items, total)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	ctx = ctxmeta.WithOrderID(ctx, orderID)

	sessionID, url, err := s.sessions.CreateSession(ctx, orderID, req.Items)
	if err != nil {
		s.log.Errorf(ctx, "checkout session failed: %v", err)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	if err := s.repo.AttachSession(ctx, orderID, sessionID); err != nil {
		return nil, fmt.Errorf("attach session: %w", err)
	}

	s.log.Infof(ctx, "checkout started session=%s items=%d total=%d", sessionID, len(req.Items), total)
	return &domain.CheckoutResult{OrderID: orderID, CheckoutURL: url}, nil
}
