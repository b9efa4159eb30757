package domain

import "time"

// Order — заказ покупателя: снимок корзины, оплата в Stripe и заказ в Printful.
type Order struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	PaymentSessionID   string           `json:"payment_session_id"`
	PaymentIntentID    string           `json:"payment_intent_id,omitempty"`
	FulfillmentOrderID string           `json:"fulfillment_order_id,omitempty"`
	Status             Status           `json:"status"`
	Items              []Item           `json:"items"`
	TotalAmount        int64            `json:"total_amount"` // в центах
	ShippingAddress    *ShippingAddress `json:"shipping_address,omitempty"`
	Shipment           *Shipment        `json:"shipment,omitempty"`
	DraftClaimedAt     *time.Time       `json:"draft_claimed_at,omitempty"`
	ConfirmedAt        *time.Time       `json:"confirmed_at,omitempty"`
	Version            int64            `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// Item — позиция заказа (снимок товара на момент оформления).
type Item struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"` // цена за единицу, в центах
	ImageURL  string `json:"image_url,omitempty"`
}

// ShippingAddress — адрес доставки, собранный платёжным провайдером.
type ShippingAddress struct {
	Name        string `json:"name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"state_code"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

// Shipment — данные об отправке из вебхука Printful.
type Shipment struct {
	Carrier        string `json:"carrier,omitempty"`
	Service        string `json:"service,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	TrackingURL    string `json:"tracking_url,omitempty"`
}

// StatusChange — условная смена статуса (compare-and-set по Expected).
type StatusChange struct {
	Expected           Status
	Next               Status
	FulfillmentOrderID string    // выставляется, только если ещё не задан
	Shipment           *Shipment // nil — не менять
}

// TotalAmount — сумма price*quantity по позициям.
func TotalAmount(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * item.Quantity
	}
	return total
}

// Clone — глубокая копия заказа; хранилища и кэш не отдают наружу свои указатели.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.Items != nil {
		cp.Items = append([]Item(nil), o.Items...)
	}
	if o.ShippingAddress != nil {
		addr := *o.ShippingAddress
		cp.ShippingAddress = &addr
	}
	if o.Shipment != nil {
		sh := *o.Shipment
		cp.Shipment = &sh
	}
	if o.DraftClaimedAt != nil {
		t := *o.DraftClaimedAt
		cp.DraftClaimedAt = &t
	}
	if o.ConfirmedAt != nil {
		t := *o.ConfirmedAt
		cp.ConfirmedAt = &t
	}
	return &cp
}
