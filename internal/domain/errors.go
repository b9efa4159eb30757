package domain

import "errors"

var (
	// ErrInvalidSignature — подпись вебхука не прошла проверку.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrMalformedPayload — тело вебхука не разбирается.
	ErrMalformedPayload = errors.New("malformed webhook payload")

	// ErrPreconditionFailed — данные заказа не позволяют продолжить (ретрай не поможет).
	ErrPreconditionFailed = errors.New("order precondition failed")
	// ErrUnknownVariant — для размера нет варианта у провайдера.
	ErrUnknownVariant = errors.New("unknown fulfillment variant")

	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict — статус заказа уже не тот, что ожидал вызывающий.
	ErrStatusConflict = errors.New("order status conflict")
	// ErrSessionConflict — к заказу уже привязана другая платёжная сессия.
	ErrSessionConflict = errors.New("payment session already attached")
)
