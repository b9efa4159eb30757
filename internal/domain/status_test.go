package domain_test

import (
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

var allStatuses = []domain.Status{
	domain.StatusPending, domain.StatusPaid, domain.StatusFulfilling, domain.StatusShipped,
	domain.StatusDelivered, domain.StatusFailed, domain.StatusRefunded,
}

// rank — порядок статусов на «прямом» пути.
var rank = map[domain.Status]int{
	domain.StatusPending:    0,
	domain.StatusPaid:       1,
	domain.StatusFulfilling: 2,
	domain.StatusShipped:    3,
	domain.StatusDelivered:  4,
}

// Переходы никогда не идут назад, кроме как в failed/refunded.
func TestCanTransition_Monotonic(t *testing.T) {
	t.Parallel()

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if !domain.CanTransition(from, to) {
				continue
			}
			if to == domain.StatusFailed || to == domain.StatusRefunded {
				if from.Terminal() {
					t.Fatalf("%s -> %s: terminal status must not transition", from, to)
				}
				continue
			}
			if rank[to] <= rank[from] {
				t.Fatalf("%s -> %s goes backwards", from, to)
			}
		}
	}
}

func TestCanTransition_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to domain.Status
		want     bool
	}{
		{domain.StatusPending, domain.StatusPaid, true},
		{domain.StatusPending, domain.StatusFulfilling, false},
		{domain.StatusPending, domain.StatusFailed, false},
		{domain.StatusPaid, domain.StatusFulfilling, true},
		{domain.StatusPaid, domain.StatusFailed, true},
		{domain.StatusPaid, domain.StatusRefunded, true},
		{domain.StatusFulfilling, domain.StatusShipped, true},
		{domain.StatusFulfilling, domain.StatusRefunded, true},
		{domain.StatusShipped, domain.StatusDelivered, true},
		{domain.StatusShipped, domain.StatusFailed, false},
		{domain.StatusFailed, domain.StatusPaid, false},
		{domain.StatusRefunded, domain.StatusFulfilling, false},
		{domain.StatusDelivered, domain.StatusRefunded, false},
		{domain.StatusPaid, domain.StatusPaid, false},
	}

	for _, tt := range tests {
		if got := domain.CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()

	terminal := map[domain.Status]bool{
		domain.StatusDelivered: true,
		domain.StatusFailed:    true,
		domain.StatusRefunded:  true,
	}
	for _, s := range allStatuses {
		if s.Terminal() != terminal[s] {
			t.Fatalf("%s.Terminal() = %v", s, s.Terminal())
		}
	}
	if domain.Status("bogus").Terminal() || domain.Status("bogus").Valid() {
		t.Fatalf("unknown status must be neither valid nor terminal")
	}
}
