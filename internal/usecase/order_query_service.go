package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
)

// Проверка, что OrderQueryService удовлетворяет интерфейсу OrderReadService.
var _ ports.OrderReadService = (*OrderQueryService)(nil)

// OrderQueryService — чтение заказов (без знаний о транспорте).
// Кэшируются только заказы в терминальном статусе: они больше не меняются.
type OrderQueryService struct {
	repo  ports.OrderRepository
	cache ports.OrderCache
	log   ports.Logger
}

// NewOrderQueryService — DI-конструктор.
func NewOrderQueryService(repo ports.OrderRepository, cache ports.OrderCache, log ports.Logger) *OrderQueryService {
	return &OrderQueryService{repo: repo, cache: cache, log: log}
}

// GetOrder — сначала кэш, при промахе — хранилище.
// Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, orderID); found {
		return order, nil
	}

	start := time.Now()
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order_id=%s err=%v", orderID, err)
		return nil, err
	}

	if order != nil && order.Status.Terminal() {
		if setErr := s.cache.Set(ctx, order); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed order_id=%s err=%v", orderID, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch order_id=%s took=%s", orderID, time.Since(start))
	return order, nil
}

// OrdersByUser — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderQueryService) OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// OrdersByStatus — операционная выборка (например, все failed для ручного разбора).
func (s *OrderQueryService) OrdersByStatus(ctx context.Context, status domain.Status, limit int) ([]*domain.Order, error) {
	return s.repo.ListByStatus(ctx, status, limit)
}

// WarmUpCache — прогрев кэша последними n заказами каждого терминального статуса.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *OrderQueryService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	warmed := 0
	for _, status := range []domain.Status{domain.StatusDelivered, domain.StatusRefunded, domain.StatusFailed} {
		list, err := s.repo.ListByStatus(ctx, status, n)
		if err != nil {
			s.log.Errorf(ctx, "repo.ListByStatus failed status=%s err=%v", status, err)
			return err
		}
		for _, order := range list {
			if setErr := s.cache.Set(ctx, order); setErr != nil {
				s.log.Warnf(ctx, "cache.Set failed order_id=%s err=%v", order.ID, setErr)
				continue
			}
			warmed++
		}
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", warmed, time.Since(start))
	return nil
}
