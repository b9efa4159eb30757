package httpx

import (
	"time"

	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/gin-gonic/gin"
)

// skipLogPaths — служебные маршруты, которые не пишем в лог.
var skipLogPaths = map[string]struct{}{
	"/metrics": {},
	"/ping":    {},
	"/healthz": {},
}

// RequestLogger — middleware для логирования HTTP-запросов.
// request_id/trace_id добавляет сам логгер из контекста.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if _, skip := skipLogPaths[c.FullPath()]; skip {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		status := c.Writer.Status()
		logf := log.Infof
		if status >= 500 {
			logf = log.Errorf
		}
		logf(
			c.Request.Context(),
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			status,
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
