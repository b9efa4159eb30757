package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/config"
	cachemem "github.com/Gunvolt24/merch_fulfillment/internal/cache/memory"
	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/gateway/printful"
	"github.com/Gunvolt24/merch_fulfillment/internal/kafka"
	pstripe "github.com/Gunvolt24/merch_fulfillment/internal/payment/stripe"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/internal/repo/postgres"
	"github.com/Gunvolt24/merch_fulfillment/internal/scheduler"
	rest "github.com/Gunvolt24/merch_fulfillment/internal/transport/http"
	"github.com/Gunvolt24/merch_fulfillment/internal/usecase"
	"github.com/Gunvolt24/merch_fulfillment/pkg/logger"
	"github.com/Gunvolt24/merch_fulfillment/pkg/metrics"
	"github.com/Gunvolt24/merch_fulfillment/pkg/telemetry"
	"github.com/Gunvolt24/merch_fulfillment/pkg/validate"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// App — собранное приложение: HTTP-сервер и фоновые воркеры (релей заданий, консьюмер).
type App struct {
	Logger          ports.Logger             // логгер
	HTTPServer      *http.Server             // HTTP-сервер
	Workers         []ports.BackgroundWorker // фоновые компоненты
	gracefulTimeout time.Duration            // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	if cfg.Stripe.WebhookSecret == "" {
		closeLogger()
		return nil, func() {}, errors.New("stripe webhook secret is required")
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}
	if cfg.Postgres.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			closeLogger()
			return nil, func() {}, err
		}
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Хранилища.
	orderRepo := postgres.NewOrderRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	limiter := postgres.NewRateLimiter(pool, cfg.Fulfillment.RateLimit, cfg.Fulfillment.RateWindow)
	orderCache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)

	// Внешние провайдеры.
	gateway := printful.NewClient(printful.Config{
		BaseURL: cfg.Printful.BaseURL,
		APIKey:  cfg.Printful.APIKey,
		StoreID: cfg.Printful.StoreID,
		Timeout: cfg.Printful.Timeout,
	})
	sessions := pstripe.NewSessionCreator(pstripe.SessionConfig{
		SecretKey:        cfg.Stripe.SecretKey,
		SuccessURL:       cfg.Stripe.SuccessURL,
		CancelURL:        cfg.Stripe.CancelURL,
		Currency:         cfg.Stripe.Currency,
		AllowedCountries: cfg.Stripe.AllowedCountries,
	}, nil)
	verifier := pstripe.NewVerifier(cfg.Stripe.WebhookSecret, cfg.Stripe.WebhookTolerance)

	// Доменный слой.
	fulfillment := usecase.NewFulfillmentService(orderRepo, gateway, jobRepo, limiter, logg, usecase.FulfillmentConfig{
		HoldDelay:          cfg.Fulfillment.HoldDelay,
		ConfirmMaxAttempts: cfg.Fulfillment.ConfirmMaxAttempts,
		ConfirmRetryBase:   cfg.Fulfillment.ConfirmRetryBase,
		ConfirmRetryMax:    cfg.Fulfillment.ConfirmRetryMax,
		DraftClaimTimeout:  cfg.Fulfillment.DraftClaimTimeout,
	})
	checkout := usecase.NewCheckoutService(orderRepo, sessions, validate.NewCheckoutValidator(), logg)
	queries := usecase.NewOrderQueryService(orderRepo, orderCache, logg)

	// Прогрев кэша
	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := queries.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	// Планировщик: Postgres → релей → Kafka → консьюмер → обработчик.
	dispatcher := scheduler.NewDispatcher(logg)
	dispatcher.Register(domain.JobCreateDraft, scheduler.Handle(fulfillment.HandleDraftJob))
	dispatcher.Register(domain.JobConfirmOrder, scheduler.Handle(fulfillment.HandleConfirmJob))

	producer := kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	relay := scheduler.NewRelay(scheduler.RelayConfig{
		PollInterval:  cfg.Scheduler.PollInterval,
		BatchSize:     cfg.Scheduler.BatchSize,
		Retention:     cfg.Scheduler.Retention,
		PurgeInterval: cfg.Scheduler.PurgeInterval,
	}, jobRepo, producer, logg)

	consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}, dispatcher, logg)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(rest.Deps{
		Webhooks:          fulfillment,
		Checkout:          checkout,
		Orders:            queries,
		Payments:          verifier,
		FulfillmentSecret: cfg.Printful.WebhookSecret,
	}, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		Workers:         []ports.BackgroundWorker{relay, consumer},
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
		if err := relay.Close(); err != nil {
			logg.Warnf(ctx, "job relay close error: %v", err)
		}

		pool.Close()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и воркеры; ждёт отмены контекста или ошибки любого из них и останавливает остальных.
func (a *App) Run(ctx context.Context) error {
	group, gctx := errgroup.WithContext(ctx)

	for _, worker := range a.Workers {
		group.Go(func() error {
			if err := worker.Run(gctx); err != nil && !isStopErr(err) {
				return err
			}
			return nil
		})
	}

	group.Go(func() error {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Остановка: по сигналу или по первой ошибке фонового компонента.
	group.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.shutdown(ctx)
		return nil
	})

	err := group.Wait()
	if err != nil {
		a.Logger.Warnf(ctx, "background error: %v", err)
	}
	a.Logger.Infof(ctx, "service stopped")
	return err
}

func (a *App) shutdown(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	for _, worker := range a.Workers {
		if err := worker.Close(); err != nil {
			a.Logger.Warnf(ctx, "worker close error: %v", err)
		}
	}
}

func isStopErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
