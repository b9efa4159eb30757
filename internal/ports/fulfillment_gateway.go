package ports

import (
	"context"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// FulfillmentGateway — клиент print-on-demand провайдера. Ретраев внутри нет.
type FulfillmentGateway interface {
	// CreateDraftOrder — создаёт заказ-черновик, возвращает внешний ID.
	CreateDraftOrder(ctx context.Context, recipient domain.ShippingAddress, items []domain.FulfillmentLineItem, externalID string) (string, error)
	// FindOrderByExternalID — ID заказа провайдера по нашему externalID; "" — не найден.
	FindOrderByExternalID(ctx context.Context, externalID string) (string, error)
	ConfirmOrder(ctx context.Context, fulfillmentOrderID string) error
	CancelOrder(ctx context.Context, fulfillmentOrderID string) error
}
