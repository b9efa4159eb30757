package domain

import "fmt"

// variantIDs — Bella+Canvas 3001 Unisex Jersey (Black): размер → variant_id Printful.
var variantIDs = map[string]int64{
	"XS":  9527,
	"S":   4016,
	"M":   4017,
	"L":   4018,
	"XL":  4019,
	"2XL": 4020,
	"3XL": 5295,
}

// FulfillmentLineItem — позиция заказа в терминах каталога провайдера.
type FulfillmentLineItem struct {
	VariantID int64
	Quantity  int64
	FileURL   string
}

// ResolveVariant — variant_id по размеру; неизвестный размер → ErrUnknownVariant.
func ResolveVariant(size string) (int64, error) {
	id, ok := variantIDs[size]
	if !ok {
		return 0, fmt.Errorf("%w: %w: size %q", ErrPreconditionFailed, ErrUnknownVariant, size)
	}
	return id, nil
}

// KnownSize — есть ли размер в таблице вариантов.
func KnownSize(size string) bool {
	_, ok := variantIDs[size]
	return ok
}

// BuildLineItems — строит позиции для провайдера; хотя бы один неизвестный
// размер валит весь заказ (частичных заказов нет).
func BuildLineItems(items []Item) ([]FulfillmentLineItem, error) {
	out := make([]FulfillmentLineItem, 0, len(items))
	for _, item := range items {
		variantID, err := ResolveVariant(item.Size)
		if err != nil {
			return nil, err
		}
		out = append(out, FulfillmentLineItem{
			VariantID: variantID,
			Quantity:  item.Quantity,
			FileURL:   item.ImageURL,
		})
	}
	return out, nil
}
