package printful

import (
	"fmt"
	"net/http"
	"strings"
)

// GatewayError — ошибка вызова Printful: операция, HTTP-статус и тело ответа.
// Status == 0 — запрос не дошёл (сеть, таймаут).
type GatewayError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("printful %s: %v", e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("printful %s: status %d: %v", e.Op, e.Status, e.Err)
	default:
		return fmt.Sprintf("printful %s: status %d: %s", e.Op, e.Status, e.Body)
	}
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Temporary — имеет смысл повторить (сеть, 429, 5xx).
func (e *GatewayError) Temporary() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// AlreadyFinalized — заказ у провайдера уже подтверждён/удалён; повтор бессмыслен и безвреден.
func (e *GatewayError) AlreadyFinalized() bool {
	switch e.Status {
	case http.StatusNotFound, http.StatusConflict:
		return true
	case http.StatusBadRequest:
		body := strings.ToLower(e.Body)
		return strings.Contains(body, "not a draft") ||
			strings.Contains(body, "already confirmed") ||
			strings.Contains(body, "cannot be confirmed") ||
			strings.Contains(body, "is not in draft")
	}
	return false
}
