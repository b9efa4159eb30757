package usecase_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	memrepo "github.com/Gunvolt24/merch_fulfillment/internal/repo/memory"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var testAddress = domain.ShippingAddress{
	Name:        "A",
	Address1:    "1 Main St",
	City:        "X",
	StateCode:   "CA",
	CountryCode: "US",
	Zip:         "00000",
}

func tee(size string, qty int64) domain.Item {
	return domain.Item{
		ProductID: "tee-1",
		Title:     "Logo Tee",
		Size:      size,
		Quantity:  qty,
		Price:     2500,
		ImageURL:  "https://cdn.example.com/tee.png",
	}
}

// pendingOrder — заказ с привязанной сессией cs_<id>.
func pendingOrder(t *testing.T, repo *memrepo.OrderRepository, items ...domain.Item) string {
	t.Helper()
	ctx := context.Background()
	id, err := repo.CreatePending(ctx, "user-1", items, domain.TotalAmount(items))
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}
	if err := repo.AttachSession(ctx, id, "cs_"+id); err != nil {
		t.Fatalf("attach session: %v", err)
	}
	return id
}

func paidOrder(t *testing.T, repo *memrepo.OrderRepository, addr domain.ShippingAddress, items ...domain.Item) string {
	t.Helper()
	id := pendingOrder(t, repo, items...)
	if _, err := repo.MarkPaid(context.Background(), id, addr, "pi_"+id); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	return id
}

// draftedOrder — заказ в fulfilling с черновиком fulfillmentID.
func draftedOrder(t *testing.T, repo *memrepo.OrderRepository, fulfillmentID string) string {
	t.Helper()
	ctx := context.Background()
	id := paidOrder(t, repo, testAddress, tee("M", 2))
	if _, err := repo.ClaimDraft(ctx, id); err != nil {
		t.Fatalf("claim draft: %v", err)
	}
	if err := repo.UpdateStatus(ctx, id, domain.StatusChange{
		Expected: domain.StatusPaid, Next: domain.StatusFulfilling, FulfillmentOrderID: fulfillmentID,
	}); err != nil {
		t.Fatalf("to fulfilling: %v", err)
	}
	return id
}

func mustGet(t *testing.T, repo *memrepo.OrderRepository, id string) *domain.Order {
	t.Helper()
	o, err := repo.GetByID(context.Background(), id)
	if err != nil || o == nil {
		t.Fatalf("get order %s: %v (nil=%v)", id, err, o == nil)
	}
	return o
}
