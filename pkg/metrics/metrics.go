package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	// HTTPRequestsTotal счетчик HTTP запросов по методу API и коду ответа
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration гистограмма длительности HTTP запросов
	HTTPRequestDuration *prometheus.HistogramVec

	// APIResponsesTotal счетчик ответов API по методу конверта и коду конверта
	APIResponsesTotal *prometheus.CounterVec

	// CacheOperationsTotal счетчик обращений к кешу скоринга (hit/miss/error)
	CacheOperationsTotal *prometheus.CounterVec

	// DBQueryDuration гистограмма длительности запросов к БД
	DBQueryDuration *prometheus.HistogramVec

	// DBOpenConnections текущее количество открытых соединений с БД
	DBOpenConnections *prometheus.GaugeVec
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"path", "method", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"path", "method"}),

		APIResponsesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "api_responses_total",
			Help:        "Total number of API envelope responses by method and code",
			ConstLabels: constLabels,
		}, []string{"api_method", "code"}),

		CacheOperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "score_cache_operations_total",
			Help:        "Score cache lookups by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Current number of open database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}
}
