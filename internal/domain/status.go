package domain

// Status — статус жизненного цикла заказа.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusFulfilling Status = "fulfilling"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// transitions — допустимые переходы. Всё, чего нет в таблице, запрещено.
var transitions = map[Status][]Status{
	StatusPending:    {StatusPaid},
	StatusPaid:       {StatusFulfilling, StatusFailed, StatusRefunded},
	StatusFulfilling: {StatusShipped, StatusDelivered, StatusFailed, StatusRefunded},
	StatusShipped:    {StatusDelivered, StatusRefunded},
}

// Valid — статус входит в перечисление.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFulfilling, StatusShipped,
		StatusDelivered, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Terminal — из статуса нет переходов.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition — разрешён ли переход from → to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
