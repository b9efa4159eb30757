package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/gateway/printful"
	"github.com/Gunvolt24/merch_fulfillment/pkg/httpx"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"github.com/gin-gonic/gin"
)

const (
	headerStripeSignature   = "Stripe-Signature"
	headerPrintfulSignature = "X-PF-Webhook-Signature"

	sourcePayment     = "payment"
	sourceFulfillment = "fulfillment"
)

// paymentWebhook — 200 только после проверки подписи и успешной записи оплаты.
// Не-200 заставит Stripe повторить доставку; повтор безопасен (MarkPaid идемпотентен).
func (h *Handler) paymentWebhook(c *gin.Context) {
	body, ok := h.readBody(c, sourcePayment)
	if !ok {
		return
	}

	event, err := h.deps.Payments.Verify(body, c.GetHeader(headerStripeSignature))
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourcePayment, "rejected").Inc()
		h.log.Warnf(c.Request.Context(), "payment webhook rejected: %v", err)
		msg := "invalid payload"
		if errors.Is(err, domain.ErrInvalidSignature) {
			msg = "invalid signature"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.deps.Webhooks.HandlePaymentEvent(ctx, event); err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourcePayment, "error").Inc()
		h.log.Errorf(ctx, "payment event %s (%s) failed: %v", event.ID, event.Type, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "event not processed"})
		return
	}

	metrics.WebhooksReceived.WithLabelValues(sourcePayment, "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// fulfillmentWebhook — 200 для любого разобранного события.
func (h *Handler) fulfillmentWebhook(c *gin.Context) {
	body, ok := h.readBody(c, sourceFulfillment)
	if !ok {
		return
	}

	if secret := h.deps.FulfillmentSecret; secret != "" &&
		!httpx.VerifyHMACSHA256(secret, body, c.GetHeader(headerPrintfulSignature)) {
		metrics.WebhooksReceived.WithLabelValues(sourceFulfillment, "rejected").Inc()
		h.log.Warnf(c.Request.Context(), "fulfillment webhook signature mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	event, err := printful.ParseWebhook(body)
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourceFulfillment, "rejected").Inc()
		h.log.Warnf(c.Request.Context(), "fulfillment webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	result := "accepted"
	if err := h.deps.Webhooks.HandleFulfillmentEvent(ctx, event); err != nil {
		result = "error"
		h.log.Errorf(ctx, "fulfillment event %s for %s failed: %v", event.Type, event.FulfillmentOrderID, err)
	}
	metrics.WebhooksReceived.WithLabelValues(sourceFulfillment, result).Inc()
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// readBody — сырое тело (нужно для проверки подписи) с ограничением размера.
func (h *Handler) readBody(c *gin.Context, source string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(source, "rejected").Inc()
		h.log.Warnf(c.Request.Context(), "%s webhook body unreadable: %v", source, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return nil, false
	}
	return body, true
}
