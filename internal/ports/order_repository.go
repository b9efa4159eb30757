package ports

import (
	"context"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// OrderRepository — хранилище заказов. Каждая мутация — атомарное обновление одной записи.
// Поиск без результата возвращает (nil, nil); мутация отсутствующего заказа — domain.ErrOrderNotFound.
type OrderRepository interface {
	// CreatePending — новый заказ в статусе pending без платёжной сессии.
	CreatePending(ctx context.Context, userID string, items []domain.Item, totalAmount int64) (string, error)
	// AttachSession — идемпотентная привязка платёжной сессии.
	AttachSession(ctx context.Context, orderID, sessionID string) error
	// MarkPaid — pending → paid с адресом; changed=false для повторных вызовов.
	MarkPaid(ctx context.Context, orderID string, addr domain.ShippingAddress, paymentIntentID string) (bool, error)
	// UpdateStatus — смена статуса при условии change.Expected (иначе domain.ErrStatusConflict).
	UpdateStatus(ctx context.Context, orderID string, change domain.StatusChange) error
	// ClaimDraft — единственный победитель на создание черновика у провайдера.
	ClaimDraft(ctx context.Context, orderID string) (bool, error)
	// MarkConfirmed — фиксирует подтверждение заказа у провайдера; false, если уже зафиксировано.
	MarkConfirmed(ctx context.Context, orderID string) (bool, error)

	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error)
	FindByFulfillmentID(ctx context.Context, fulfillmentOrderID string) (*domain.Order, error)
	FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status, limit int) ([]*domain.Order, error)
}
