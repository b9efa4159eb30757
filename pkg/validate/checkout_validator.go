package validate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
)

// Проверка, что CheckoutValidator удовлетворяет интерфейсу CheckoutValidator.
var _ ports.CheckoutValidator = (*CheckoutValidator)(nil)

// ErrInvalidCheckout — базовая (sentinel error) ошибка валидации.
var ErrInvalidCheckout = errors.New("checkout validation failed")

// maxItems — ограничение на число позиций в одной корзине.
const maxItems = 50

// CheckoutValidator — проверка запроса на оформление заказа.
type CheckoutValidator struct{}

// NewCheckoutValidator — конструктор CheckoutValidator.
// Возвращает ErrInvalidCheckout (с обёрнутой причиной) при любой проблеме.
func NewCheckoutValidator() *CheckoutValidator { return &CheckoutValidator{} }

// Validate — проверяет пользователя и корзину.
func (v *CheckoutValidator) Validate(_ context.Context, req *domain.CheckoutRequest) error {
	if req == nil {
		return fmt.Errorf("%w: запрос не может быть nil", ErrInvalidCheckout)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id обязателен", ErrInvalidCheckout)
	}
	return v.validateItems(req.Items)
}

// Валидация товаров
func (v *CheckoutValidator) validateItems(items []domain.Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items не должен быть пустым", ErrInvalidCheckout)
	}
	if len(items) > maxItems {
		return fmt.Errorf("%w: items не более %d позиций", ErrInvalidCheckout, maxItems)
	}

	for i := range items {
		item := &items[i]
		idx := strconv.Itoa(i)

		if item.ProductID == "" {
			return fmt.Errorf("%w: items[%s].product_id обязателен", ErrInvalidCheckout, idx)
		}
		if item.Title == "" {
			return fmt.Errorf("%w: items[%s].title обязателен", ErrInvalidCheckout, idx)
		}
		if !domain.KnownSize(item.Size) {
			return fmt.Errorf("%w: items[%s].size %q не поддерживается", ErrInvalidCheckout, idx, item.Size)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: items[%s].quantity должен быть положительным", ErrInvalidCheckout, idx)
		}
		if item.Price <= 0 {
			return fmt.Errorf("%w: items[%s].price должен быть положительным", ErrInvalidCheckout, idx)
		}
		if u, err := url.Parse(item.ImageURL); err != nil || u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("%w: items[%s].image_url должен быть https-ссылкой", ErrInvalidCheckout, idx)
		}
	}
	return nil
}
