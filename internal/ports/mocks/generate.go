//go:generate mockgen -source=../order_repository.go    -destination=./mock_order_repository.go    -package=mocks
//go:generate mockgen -source=../order_cache.go         -destination=./mock_order_cache.go         -package=mocks
//go:generate mockgen -source=../order_read_service.go  -destination=./mock_order_read_service.go  -package=mocks
//go:generate mockgen -source=../fulfillment_gateway.go -destination=./mock_fulfillment_gateway.go -package=mocks
//go:generate mockgen -source=../scheduler.go           -destination=./mock_scheduler.go           -package=mocks
//go:generate mockgen -source=../rate_limiter.go        -destination=./mock_rate_limiter.go        -package=mocks
//go:generate mockgen -source=../payment.go             -destination=./mock_payment.go             -package=mocks
//go:generate mockgen -source=../services.go            -destination=./mock_services.go            -package=mocks
//go:generate mockgen -source=../worker.go              -destination=./mock_worker.go              -package=mocks

package mocks
