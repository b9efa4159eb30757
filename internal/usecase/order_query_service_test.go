package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports/mocks"
	"github.com/Gunvolt24/merch_fulfillment/internal/usecase"
)

const orderID = "order-1"

func TestGetOrder_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	o := &domain.Order{ID: orderID, Status: domain.StatusDelivered}
	cache.EXPECT().Get(gomock.Any(), orderID).Return(o, true)

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	got, err := svc.GetOrder(context.Background(), orderID)
	if err != nil || got == nil || got.ID != orderID {
		t.Fatalf("expected hit, got err=%v, order=%+v", err, got)
	}
}

// Терминальный заказ кэшируется
func TestGetOrder_CacheMiss_TerminalIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	o := &domain.Order{ID: orderID, Status: domain.StatusRefunded}

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), orderID).Return(nil, false),
		repo.EXPECT().GetByID(gomock.Any(), orderID).Return(o, nil),
		cache.EXPECT().Set(gomock.Any(), o),
	)

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	got, err := svc.GetOrder(context.Background(), orderID)
	if err != nil || got == nil || got.ID != orderID {
		t.Fatalf("expected miss, got err=%v, order=%+v", err, got)
	}
}

// Заказ в работе не кэшируется: покупатель должен видеть смену статуса
func TestGetOrder_CacheMiss_InFlightNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	o := &domain.Order{ID: orderID, Status: domain.StatusFulfilling}
	cache.EXPECT().Get(gomock.Any(), orderID).Return(nil, false)
	repo.EXPECT().GetByID(gomock.Any(), orderID).Return(o, nil)

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	if _, err := svc.GetOrder(context.Background(), orderID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetOrder_NotFoundAndRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false).Times(2)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)
	repo.EXPECT().GetByID(gomock.Any(), "broken").Return(nil, errors.New("db down"))

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	got, err := svc.GetOrder(context.Background(), "missing")
	if err != nil || got != nil {
		t.Fatalf("want (nil, nil), got (%v, %v)", got, err)
	}
	if _, err := svc.GetOrder(context.Background(), "broken"); err == nil {
		t.Fatalf("expected repo error")
	}
}

func TestOrdersByUserAndStatus_Proxy(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	list := []*domain.Order{{ID: "a"}, {ID: "b"}}
	repo.EXPECT().ListByUser(gomock.Any(), "u1", 10, 20).Return(list, nil)
	repo.EXPECT().ListByStatus(gomock.Any(), domain.StatusFailed, 5).Return(list[:1], nil)

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	byUser, err := svc.OrdersByUser(context.Background(), "u1", 10, 20)
	if err != nil || len(byUser) != 2 {
		t.Fatalf("OrdersByUser: err=%v len=%d", err, len(byUser))
	}
	byStatus, err := svc.OrdersByStatus(context.Background(), domain.StatusFailed, 5)
	if err != nil || len(byStatus) != 1 {
		t.Fatalf("OrdersByStatus: err=%v len=%d", err, len(byStatus))
	}
}

func TestWarmUpCache_TerminalStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	cache := mocks.NewMockOrderCache(ctrl)

	repo.EXPECT().ListByStatus(gomock.Any(), domain.StatusDelivered, 3).Return([]*domain.Order{{ID: "d1"}}, nil)
	repo.EXPECT().ListByStatus(gomock.Any(), domain.StatusRefunded, 3).Return(nil, nil)
	repo.EXPECT().ListByStatus(gomock.Any(), domain.StatusFailed, 3).Return([]*domain.Order{{ID: "f1"}, {ID: "f2"}}, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	svc := usecase.NewOrderQueryService(repo, cache, noopLogger{})

	if err := svc.WarmUpCache(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// n <= 0 — без обращений к хранилищу
	if err := svc.WarmUpCache(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
