package rest

import (
	"net/http"

	"github.com/Gunvolt24/merch_fulfillment/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin-роутер: вебхуки провайдеров, оформление и чтение заказов.
// otelServiceName пустой — без трейсинга запросов.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/payment/webhook", h.paymentWebhook)
	r.POST("/fulfillment/webhook", h.fulfillmentWebhook)

	r.POST("/checkout", h.checkout)
	r.GET("/order/:id", h.getOrderByID)
	r.GET("/user/:id/orders", h.listOrdersByUser)
	r.GET("/orders", h.listOrdersByStatus)

	return r
}
