package domain

// CheckoutRequest — запрос на оформление: корзина уже собрана клиентом.
type CheckoutRequest struct {
	UserID string `json:"user_id"`
	Items  []Item `json:"items"`
}

// CheckoutResult — созданный заказ и ссылка на оплату.
type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}
