// Пакет stripe — проверка вебхуков Stripe и создание Checkout-сессий (stripe-go).
package stripe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var _ ports.PaymentVerifier = (*Verifier)(nil)

// DefaultTolerance — допустимый возраст подписи вебхука.
const DefaultTolerance = webhook.DefaultTolerance

// Verifier — проверяет Stripe-Signature и разбирает событие.
// Чистая функция: ни сети, ни состояния.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

// NewVerifier — secret: whsec_... из настроек эндпоинта.
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance}
}

// Verify — ErrInvalidSignature при неверной/просроченной подписи,
// ErrMalformedPayload при нечитаемом теле. Неизвестные типы событий возвращаются без вложенных данных.
func (v *Verifier) Verify(payload []byte, signatureHeader string) (*domain.PaymentEvent, error) {
	if signatureHeader == "" {
		return nil, fmt.Errorf("%w: missing signature header", domain.ErrInvalidSignature)
	}
	if err := webhook.ValidatePayloadWithTolerance(payload, signatureHeader, v.secret, v.tolerance); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	var event stripeapi.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("%w: event type is empty", domain.ErrMalformedPayload)
	}

	out := &domain.PaymentEvent{ID: event.ID, Type: string(event.Type)}

	var raw json.RawMessage
	if event.Data != nil {
		raw = event.Data.Raw
	}

	switch out.Type {
	case domain.PaymentEventCheckoutCompleted:
		completed, err := parseCheckoutSession(raw)
		if err != nil {
			return nil, err
		}
		out.CheckoutCompleted = completed
	case domain.PaymentEventChargeRefunded:
		refunded, err := parseCharge(raw)
		if err != nil {
			return nil, err
		}
		out.ChargeRefunded = refunded
	}
	return out, nil
}

// address — адрес в формате Stripe.
type address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type shippingDetails struct {
	Name    string   `json:"name"`
	Address *address `json:"address"`
}

// checkoutSessionObject — только нужные поля checkout.session.
type checkoutSessionObject struct {
	ID                   string            `json:"id"`
	Metadata             map[string]string `json:"metadata"`
	PaymentIntent        json.RawMessage   `json:"payment_intent"`
	CollectedInformation *struct {
		ShippingDetails *shippingDetails `json:"shipping_details"`
	} `json:"collected_information"`
	// До API 2025-03 адрес лежал здесь.
	ShippingDetails *shippingDetails `json:"shipping_details"`
}

type chargeObject struct {
	ID             string          `json:"id"`
	PaymentIntent  json.RawMessage `json:"payment_intent"`
	Refunded       bool            `json:"refunded"`
	Amount         int64           `json:"amount"`
	AmountRefunded int64           `json:"amount_refunded"`
}

func parseCheckoutSession(raw json.RawMessage) (*domain.CheckoutCompleted, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: checkout session object is missing", domain.ErrMalformedPayload)
	}
	var obj checkoutSessionObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: checkout session: %w", domain.ErrMalformedPayload, err)
	}
	if obj.ID == "" {
		return nil, fmt.Errorf("%w: checkout session id is empty", domain.ErrMalformedPayload)
	}

	out := &domain.CheckoutCompleted{
		SessionID:       obj.ID,
		OrderID:         obj.Metadata[MetadataOrderID],
		PaymentIntentID: expandableID(obj.PaymentIntent),
	}

	details := obj.ShippingDetails
	if obj.CollectedInformation != nil && obj.CollectedInformation.ShippingDetails != nil {
		details = obj.CollectedInformation.ShippingDetails
	}
	if details != nil && details.Address != nil {
		out.Shipping = &domain.ShippingAddress{
			Name:        details.Name,
			Address1:    details.Address.Line1,
			Address2:    details.Address.Line2,
			City:        details.Address.City,
			StateCode:   details.Address.State,
			CountryCode: details.Address.Country,
			Zip:         details.Address.PostalCode,
		}
	}
	return out, nil
}

func parseCharge(raw json.RawMessage) (*domain.ChargeRefunded, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: charge object is missing", domain.ErrMalformedPayload)
	}
	var obj chargeObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: charge: %w", domain.ErrMalformedPayload, err)
	}
	return &domain.ChargeRefunded{
		PaymentIntentID: expandableID(obj.PaymentIntent),
		FullyRefunded:   obj.Refunded || (obj.Amount > 0 && obj.AmountRefunded >= obj.Amount),
	}, nil
}

// expandableID — поле Stripe бывает строкой-id или раскрытым объектом с id.
func expandableID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}
