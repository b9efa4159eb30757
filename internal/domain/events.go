package domain

// Типы событий платёжного провайдера, которые разбирает верификатор.
const (
	PaymentEventCheckoutCompleted = "checkout.session.completed"
	PaymentEventChargeRefunded    = "charge.refunded"
)

// PaymentEvent — проверенное событие Stripe. Заполнено не более одного из вложенных полей.
type PaymentEvent struct {
	ID                string
	Type              string
	CheckoutCompleted *CheckoutCompleted
	ChargeRefunded    *ChargeRefunded
}

// CheckoutCompleted — данные завершённой checkout-сессии.
type CheckoutCompleted struct {
	SessionID       string
	OrderID         string // из metadata; пусто — событие не наше
	PaymentIntentID string
	Shipping        *ShippingAddress
}

// ChargeRefunded — возврат платежа.
type ChargeRefunded struct {
	PaymentIntentID string
	FullyRefunded   bool
}

// Типы событий Printful.
const (
	FulfillmentEventPackageShipped = "package_shipped"
	FulfillmentEventOrderFailed    = "order_failed"
	FulfillmentEventOrderCanceled  = "order_canceled"
)

// FulfillmentEvent — событие вебхука Printful.
type FulfillmentEvent struct {
	Type               string
	FulfillmentOrderID string
	Reason             string
	Shipment           *Shipment
}

// Задания планировщика.
const (
	JobCreateDraft  = "fulfillment.create_draft"
	JobConfirmOrder = "fulfillment.confirm_order"
)

// DraftJob — полезная нагрузка задания на создание черновика.
type DraftJob struct {
	OrderID string `json:"order_id"`
}

// ConfirmJob — полезная нагрузка отложенного подтверждения.
type ConfirmJob struct {
	OrderID            string `json:"order_id"`
	FulfillmentOrderID string `json:"fulfillment_order_id"`
	Attempt            int    `json:"attempt"`
}
