package printful_test

import (
	"errors"
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/gateway/printful"
)

func TestParseWebhook_PackageShipped(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"type": "package_shipped",
		"created": 1700000000,
		"data": {
			"shipment": {"carrier": "USPS", "service": "First Class", "tracking_number": 9400111, "tracking_url": "https://t/1"},
			"order": {"id": 13, "external_id": "o1", "status": "fulfilled"}
		}
	}`)

	ev, err := printful.ParseWebhook(body)
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if ev.Type != domain.FulfillmentEventPackageShipped || ev.FulfillmentOrderID != "13" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Shipment == nil || ev.Shipment.TrackingNumber != "9400111" || ev.Shipment.Carrier != "USPS" {
		t.Fatalf("unexpected shipment: %+v", ev.Shipment)
	}
}

func TestParseWebhook_OrderFailed(t *testing.T) {
	t.Parallel()

	ev, err := printful.ParseWebhook([]byte(`{"type":"order_failed","data":{"reason":"bad file","order":{"id":"77"}}}`))
	if err != nil {
		t.Fatalf("ParseWebhook: %v", err)
	}
	if ev.FulfillmentOrderID != "77" || ev.Reason != "bad file" || ev.Shipment != nil {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestParseWebhook_Malformed(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `not json`, `{"data":{}}`} {
		if _, err := printful.ParseWebhook([]byte(body)); !errors.Is(err, domain.ErrMalformedPayload) {
			t.Fatalf("body %q: want ErrMalformedPayload, got %v", body, err)
		}
	}
}
