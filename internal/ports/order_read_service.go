package ports

import (
	"context"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// OrderReadService — сервис чтения заказов (поллинг покупателем и операционные выборки).
type OrderReadService interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
	OrdersByStatus(ctx context.Context, status domain.Status, limit int) ([]*domain.Order, error)
}
