package ports

import (
	"context"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// WebhookService — бизнес-реакция на входящие вебхуки (для транспортного слоя).
type WebhookService interface {
	// HandlePaymentEvent — ошибка означает, что событие нужно доставить повторно.
	HandlePaymentEvent(ctx context.Context, event *domain.PaymentEvent) error
	HandleFulfillmentEvent(ctx context.Context, event *domain.FulfillmentEvent) error
}

// CheckoutService — оформление заказа и создание платёжной сессии.
type CheckoutService interface {
	StartCheckout(ctx context.Context, req *domain.CheckoutRequest) (*domain.CheckoutResult, error)
}

// CheckoutValidator — проверка запроса на оформление.
type CheckoutValidator interface {
	Validate(ctx context.Context, req *domain.CheckoutRequest) error
}
