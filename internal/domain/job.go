package domain

import (
	"encoding/json"
	"time"
)

// Job — отложенное задание: имя обработчика и его JSON-нагрузка.
// Доставка at-least-once, отмены нет; обработчик сам перепроверяет состояние.
type Job struct {
	ID        string          `json:"id"`
	Handler   string          `json:"handler"`
	Payload   json.RawMessage `json:"payload"`
	ExecuteAt time.Time       `json:"execute_at"`
}
