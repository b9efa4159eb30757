package ports

import (
	"context"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// PaymentVerifier — проверка подписи и разбор вебхука платёжного провайдера.
type PaymentVerifier interface {
	Verify(payload []byte, signatureHeader string) (*domain.PaymentEvent, error)
}

// CheckoutSessionCreator — создание checkout-сессии у платёжного провайдера.
type CheckoutSessionCreator interface {
	CreateSession(ctx context.Context, orderID string, items []domain.Item) (sessionID, url string, err error)
}
