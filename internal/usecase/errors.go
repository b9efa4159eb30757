package usecase

import "errors"

var (
	// ErrDraftRejected — провайдер не создал черновик; заказ переведён в failed.
	ErrDraftRejected = errors.New("fulfillment draft rejected")
	// ErrConfirmRejected — подтверждение не удалось окончательно; заказ переведён в failed.
	ErrConfirmRejected = errors.New("fulfillment confirmation rejected")
)

// temporary / finalized — классификация ошибок шлюза без зависимости от его пакета.
type temporary interface{ Temporary() bool }

type finalized interface{ AlreadyFinalized() bool }

func isTemporary(err error) bool {
	var t temporary
	return errors.As(err, &t) && t.Temporary()
}

func isAlreadyFinalized(err error) bool {
	var f finalized
	return errors.As(err, &f) && f.AlreadyFinalized()
}
