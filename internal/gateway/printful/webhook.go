package printful

import (
	"encoding/json"
	"fmt"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
)

// webhookEvent — конверт вебхука Printful (только используемые поля).
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Order *struct {
			ID json.Number `json:"id"`
		} `json:"order"`
		Shipment *struct {
			Carrier        string `json:"carrier"`
			Service        string `json:"service"`
			TrackingNumber any    `json:"tracking_number"`
			TrackingURL    string `json:"tracking_url"`
		} `json:"shipment"`
		Reason string `json:"reason"`
	} `json:"data"`
}

// ParseWebhook — разбирает тело вебхука Printful в доменное событие.
// Невалидный JSON или пустой type — domain.ErrMalformedPayload.
func ParseWebhook(body []byte) (*domain.FulfillmentEvent, error) {
	var raw webhookEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}
	if raw.Type == "" {
		return nil, fmt.Errorf("%w: event type is empty", domain.ErrMalformedPayload)
	}

	event := &domain.FulfillmentEvent{
		Type:   raw.Type,
		Reason: raw.Data.Reason,
	}
	if raw.Data.Order != nil {
		event.FulfillmentOrderID = raw.Data.Order.ID.String()
	}
	if sh := raw.Data.Shipment; sh != nil {
		event.Shipment = &domain.Shipment{
			Carrier:        sh.Carrier,
			Service:        sh.Service,
			TrackingNumber: trackingNumber(sh.TrackingNumber),
			TrackingURL:    sh.TrackingURL,
		}
	}
	return event, nil
}

// trackingNumber — Printful присылает номер то строкой, то числом.
func trackingNumber(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return ""
	}
}
