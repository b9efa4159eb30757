//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeItems — корзина из n футболок размера M.
func MakeItems(n int) []domain.Item {
	if n <= 0 {
		n = 1
	}
	items := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.Item{
			ProductID: "tee-" + UniqSuffix(),
			Title:     "Logo Tee",
			Size:      "M",
			Quantity:  int64(i + 1),
			Price:     2500,
			ImageURL:  "https://cdn.example.com/tee.png",
		})
	}
	return items
}

// MakeAddress — валидный адрес доставки.
func MakeAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:        "John Smith",
		Address1:    "1 Main St",
		City:        "Springfield",
		StateCode:   "CA",
		CountryCode: "US",
		Zip:         "90001",
	}
}

// UserID — уникальный id пользователя для изоляции тестов.
func UserID() string { return "user-" + UniqSuffix() }
