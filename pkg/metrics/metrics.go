package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Задания планировщика (Kafka-консьюмер и релей).
var (
	JobsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_consumed_total",
			Help: "Number of job messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	JobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_processed_total",
			Help: "Number of jobs handled successfully",
		},
		[]string{"handler"},
	)
	JobsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_failed_total",
			Help: "Number of jobs failed to process",
		},
		[]string{"handler", "kind"}, // kind: permanent|transient
	)
	JobsScheduled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_scheduled_total",
			Help: "Number of jobs persisted for delayed execution",
		},
		[]string{"handler"},
	)
	JobsDispatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_jobs_dispatched_total",
			Help: "Number of due jobs published to Kafka by the relay",
		},
	)
)

// Вебхуки и внешний провайдер.
var (
	WebhooksReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhooks_received_total",
			Help: "Inbound webhooks by source and outcome",
		},
		[]string{"source", "result"}, // source: payment|fulfillment
	)
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fulfillment_gateway_requests_total",
			Help: "Outbound fulfillment provider calls by operation and HTTP status",
		},
		[]string{"op", "code"},
	)
	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fulfillment_gateway_request_duration_seconds",
			Help:    "Latency of outbound fulfillment provider calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	OrderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status changes applied by the fulfillment pipeline",
		},
		[]string{"from", "to"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре (повторный вызов безопасен).
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			JobsConsumed, JobsProcessed, JobsFailed, JobsScheduled, JobsDispatched,
			WebhooksReceived, GatewayRequests, GatewayLatency, OrderTransitions,
			CacheOps, CacheSize,
		)
	})
}
