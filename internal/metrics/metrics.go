// Package metrics - Prometheus-метрики сервиса и воркера.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "geo_engine"

// Metrics держит собственный реестр и все коллекторы.
// Методы безопасны для nil-получателя, чтобы компоненты работали без метрик в тестах.
type Metrics struct {
	reg *prometheus.Registry

	dbInUse         prometheus.Gauge
	dbAcquireFailed prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	tasksSubmitted prometheus.Counter
	tasksProcessed *prometheus.CounterVec

	geocodeCache *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reg: reg,
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections_in_use",
			Help:      "Connections currently leased from the spatial store pool.",
		}),
		dbAcquireFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_acquire_failures_total",
			Help:      "Failed attempts to lease a connection from the pool.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		tasksSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_submitted_total",
			Help:      "Analysis tasks accepted for async processing.",
		}),
		tasksProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_processed_total",
			Help:      "Analysis tasks finished by the worker, by terminal status.",
		}, []string{"status"}),
		geocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_requests_total",
			Help:      "Geocode cache lookups by result (hit, miss).",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.dbInUse,
		m.dbAcquireFailed,
		m.httpRequests,
		m.httpDuration,
		m.tasksSubmitted,
		m.tasksProcessed,
		m.geocodeCache,
	)
	return m
}

// Handler - обработчик /metrics для собственного реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) ConnAcquired() {
	if m == nil {
		return
	}
	m.dbInUse.Inc()
}

func (m *Metrics) ConnReleased() {
	if m == nil {
		return
	}
	m.dbInUse.Dec()
}

func (m *Metrics) AcquireFailed() {
	if m == nil {
		return
	}
	m.dbAcquireFailed.Inc()
}

// ObserveHTTP - route берется из шаблона маршрута, а не из пути, чтобы не плодить метки
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) TaskSubmitted() {
	if m == nil {
		return
	}
	m.tasksSubmitted.Inc()
}

func (m *Metrics) TaskProcessed(status string) {
	if m == nil {
		return
	}
	m.tasksProcessed.WithLabelValues(status).Inc()
}

func (m *Metrics) GeocodeCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.geocodeCache.WithLabelValues(result).Inc()
}
