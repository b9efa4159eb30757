// Пакет memory — хранилище заказов в памяти процесса (локальный запуск и тесты).
// Семантика условных обновлений совпадает с реализацией на Postgres.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/google/uuid"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — map под мьютексом; наружу отдаются копии.
type OrderRepository struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	now    func() time.Time
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*domain.Order), now: time.Now}
}

func (r *OrderRepository) CreatePending(_ context.Context, userID string, items []domain.Item, totalAmount int64) (string, error) {
	if userID == "" {
		return "", errors.New("user_id is required")
	}
	if len(items) == 0 {
		return "", errors.New("order must contain at least one item")
	}

	now := r.now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		Status:      domain.StatusPending,
		Items:       append([]domain.Item(nil), items...),
		TotalAmount: totalAmount,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return order.ID, nil
}

func (r *OrderRepository) AttachSession(_ context.Context, orderID, sessionID string) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.PaymentSessionID == sessionID {
		return nil
	}
	if order.PaymentSessionID != "" {
		return fmt.Errorf("%w: order %s already has session %s", domain.ErrSessionConflict, orderID, order.PaymentSessionID)
	}
	for _, other := range r.orders {
		if other.PaymentSessionID == sessionID {
			return fmt.Errorf("%w: session %s belongs to another order", domain.ErrSessionConflict, sessionID)
		}
	}
	order.PaymentSessionID = sessionID
	r.touch(order)
	return nil
}

func (r *OrderRepository) MarkPaid(_ context.Context, orderID string, addr domain.ShippingAddress, paymentIntentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.Status != domain.StatusPending {
		return false, nil
	}
	order.Status = domain.StatusPaid
	order.ShippingAddress = &addr
	order.PaymentIntentID = paymentIntentID
	r.touch(order)
	return true, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, orderID string, change domain.StatusChange) error {
	if !domain.CanTransition(change.Expected, change.Next) {
		return fmt.Errorf("%w: transition %s -> %s is not allowed", domain.ErrStatusConflict, change.Expected, change.Next)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.Status != change.Expected {
		return fmt.Errorf("%w: order %s is not %s", domain.ErrStatusConflict, orderID, change.Expected)
	}
	order.Status = change.Next
	if order.FulfillmentOrderID == "" {
		order.FulfillmentOrderID = change.FulfillmentOrderID
	}
	if change.Shipment != nil {
		shipment := *change.Shipment
		order.Shipment = &shipment
	}
	r.touch(order)
	return nil
}

func (r *OrderRepository) ClaimDraft(_ context.Context, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.Status != domain.StatusPaid || order.DraftClaimedAt != nil {
		return false, nil
	}
	now := r.now().UTC()
	order.DraftClaimedAt = &now
	r.touch(order)
	return true, nil
}

func (r *OrderRepository) MarkConfirmed(_ context.Context, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if order.ConfirmedAt != nil {
		return false, nil
	}
	now := r.now().UTC()
	order.ConfirmedAt = &now
	r.touch(order)
	return true, nil
}

func (r *OrderRepository) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[orderID].Clone(), nil
}

func (r *OrderRepository) FindBySessionID(_ context.Context, sessionID string) (*domain.Order, error) {
	return r.findFirst(func(o *domain.Order) bool { return sessionID != "" && o.PaymentSessionID == sessionID }), nil
}

func (r *OrderRepository) FindByFulfillmentID(_ context.Context, fulfillmentOrderID string) (*domain.Order, error) {
	return r.findFirst(func(o *domain.Order) bool {
		return fulfillmentOrderID != "" && o.FulfillmentOrderID == fulfillmentOrderID
	}), nil
}

func (r *OrderRepository) FindByPaymentIntent(_ context.Context, paymentIntentID string) (*domain.Order, error) {
	return r.findFirst(func(o *domain.Order) bool { return paymentIntentID != "" && o.PaymentIntentID == paymentIntentID }), nil
}

func (r *OrderRepository) ListByUser(_ context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	matched := r.filter(func(o *domain.Order) bool { return o.UserID == userID })
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return page(matched, limit, offset), nil
}

func (r *OrderRepository) ListByStatus(_ context.Context, status domain.Status, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	matched := r.filter(func(o *domain.Order) bool { return o.Status == status })
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].UpdatedAt.Equal(matched[j].UpdatedAt) {
			return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return page(matched, limit, 0), nil
}

// ------вспомогательные функции------

// touch — версия и время изменения; вызывать под r.mu.
func (r *OrderRepository) touch(order *domain.Order) {
	order.Version++
	order.UpdatedAt = r.now().UTC()
}

func (r *OrderRepository) findFirst(match func(*domain.Order) bool) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if match(order) {
			return order.Clone()
		}
	}
	return nil
}

func (r *OrderRepository) filter(match func(*domain.Order) bool) []*domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if match(order) {
			out = append(out, order.Clone())
		}
	}
	return out
}

func page(orders []*domain.Order, limit, offset int) []*domain.Order {
	if offset >= len(orders) {
		return []*domain.Order{}
	}
	end := offset + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end]
}
