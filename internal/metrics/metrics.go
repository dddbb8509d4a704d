// Package metrics exposes Prometheus collectors for the HTTP layer, the
// outbox relay and the periodically refreshed order statistics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"pizzeria/internal/core/domain/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pizzeria"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latencyMS *prometheus.HistogramVec

	outboxPublished prometheus.Counter
	outboxFailed    prometheus.Counter

	ordersTotal    prometheus.Gauge
	ordersToday    prometheus.Gauge
	ordersActive   prometheus.Gauge
	ordersByStatus *prometheus.GaugeVec
	revenueTotal   prometheus.Gauge
	revenueToday   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		outboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox messages delivered to the broker.",
		}),
		outboxFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "failed_batches_total",
			Help:      "Relay runs that failed to publish their batch.",
		}),
		ordersTotal:  newStatsGauge("orders_total", "Orders ever placed."),
		ordersToday:  newStatsGauge("orders_today", "Orders placed during the current local day."),
		ordersActive: newStatsGauge("orders_active", "Orders in a non-terminal status."),
		ordersByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "statistics",
			Name:      "orders_by_status",
			Help:      "Orders per lifecycle status.",
		}, []string{"status"}),
		revenueTotal: newStatsGauge("revenue_total", "Revenue of completed orders."),
		revenueToday: newStatsGauge("revenue_today", "Revenue of completed orders placed today."),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latencyMS,
		m.outboxPublished,
		m.outboxFailed,
		m.ordersTotal,
		m.ordersToday,
		m.ordersActive,
		m.ordersByStatus,
		m.revenueTotal,
		m.revenueToday,
	)
	return m
}

func newStatsGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "statistics",
		Name:      name,
		Help:      help,
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served request. route is the matched route
// pattern, never the raw path.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latencyMS.WithLabelValues(method, route).Observe(float64(elapsed) / float64(time.Millisecond))
}

func (m *Metrics) OutboxPublished(n int) {
	m.outboxPublished.Add(float64(n))
}

func (m *Metrics) OutboxFailed() {
	m.outboxFailed.Inc()
}

// SetStatistics replaces every statistics gauge with the snapshot values.
func (m *Metrics) SetStatistics(s services.Statistics) {
	m.ordersTotal.Set(float64(s.TotalOrders))
	m.ordersToday.Set(float64(s.TodayOrders))
	m.ordersActive.Set(float64(s.ActiveOrders))
	for status, n := range s.StatusCounts() {
		m.ordersByStatus.WithLabelValues(status.String()).Set(float64(n))
	}
	m.revenueTotal.Set(s.TotalRevenue.Amount().InexactFloat64())
	m.revenueToday.Set(s.TodayRevenue.Amount().InexactFloat64())
}
