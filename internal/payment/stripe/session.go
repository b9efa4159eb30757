package stripe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

var _ ports.CheckoutSessionCreator = (*SessionCreator)(nil)

// MetadataOrderID — ключ metadata, по которому вебхук находит заказ.
const MetadataOrderID = "order_id"

// SessionConfig — параметры Checkout-сессии.
type SessionConfig struct {
	SecretKey        string
	SuccessURL       string
	CancelURL        string
	Currency         string
	AllowedCountries []string
}

// SessionCreator — создание Checkout-сессий в режиме payment со сбором адреса доставки.
type SessionCreator struct {
	cfg    SessionConfig
	client session.Client
}

// NewSessionCreator — backend == nil означает боевой API Stripe.
func NewSessionCreator(cfg SessionConfig, backend stripeapi.Backend) *SessionCreator {
	if backend == nil {
		backend = stripeapi.GetBackend(stripeapi.APIBackend)
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripeapi.CurrencyUSD)
	}
	if len(cfg.AllowedCountries) == 0 {
		cfg.AllowedCountries = []string{"US", "CA", "GB", "AU"}
	}
	return &SessionCreator{
		cfg:    cfg,
		client: session.Client{B: backend, Key: cfg.SecretKey},
	}
}

// CreateSession — сессия с позициями заказа; order_id кладётся в metadata сессии и платежа.
func (s *SessionCreator) CreateSession(ctx context.Context, orderID string, items []domain.Item) (string, string, error) {
	successURL, err := withQuery(s.cfg.SuccessURL, "order_id", orderID)
	if err != nil {
		return "", "", fmt.Errorf("success url: %w", err)
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:              stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL:        stripeapi.String(successURL),
		CancelURL:         stripeapi.String(s.cfg.CancelURL),
		ClientReferenceID: stripeapi.String(orderID),
		ShippingAddressCollection: &stripeapi.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripeapi.StringSlice(s.cfg.AllowedCountries),
		},
		PaymentIntentData: &stripeapi.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{MetadataOrderID: orderID},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataOrderID, orderID)
	params.SetIdempotencyKey("checkout-" + orderID)

	for _, item := range items {
		productData := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripeapi.String(fmt.Sprintf("%s (%s)", item.Title, item.Size)),
		}
		if item.ImageURL != "" {
			productData.Images = stripeapi.StringSlice([]string{item.ImageURL})
		}
		params.LineItems = append(params.LineItems, &stripeapi.CheckoutSessionLineItemParams{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripeapi.String(s.cfg.Currency),
				ProductData: productData,
				UnitAmount:  stripeapi.Int64(item.Price),
			},
			Quantity: stripeapi.Int64(item.Quantity),
		})
	}

	sess, err := s.client.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}

// withQuery — добавляет параметр к URL, сохраняя существующие.
func withQuery(raw, key, value string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
