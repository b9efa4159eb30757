package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/gin-gonic/gin"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// maxWebhookBody — верхняя граница тела вебхука (события Stripe < 512KB).
	maxWebhookBody = 1 << 20
)

// Deps — сервисы, которые обслуживает HTTP-слой.
type Deps struct {
	Webhooks ports.WebhookService
	Checkout ports.CheckoutService
	Orders   ports.OrderReadService
	Payments ports.PaymentVerifier

	// FulfillmentSecret — общий секрет подписи вебхуков Printful; пусто — без проверки.
	FulfillmentSecret string
}

type Handler struct {
	deps           Deps
	log            ports.Logger
	requestTimeout time.Duration
}

// NewHandler — requestTimeout <= 0 заменяется дефолтом.
func NewHandler(deps Deps, log ports.Logger, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{deps: deps, log: log, requestTimeout: requestTimeout}
}

// withTimeout — контекст запроса с ограничением по времени.
func (h *Handler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.requestTimeout)
}
