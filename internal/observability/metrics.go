package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/role"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// Metrics holds every collector of the service on one registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge

	orderTransitions *prometheus.CounterVec
	lowStockRecords  prometheus.Gauge
}

// NewMetrics registers the collectors on registry. A nil registry gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of requests being served.",
			},
		),
		orderTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "transitions_total",
				Help:      "Committed order updates by status change and requester role.",
			},
			[]string{"from", "to", "role"},
		),
		lowStockRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "inventory",
				Name:      "low_stock_records",
				Help:      "Inventory records at or below the low-stock threshold at the last check.",
			},
		),
	}
}

// Registry is what /metrics serves.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// OrderTransitioned counts a committed order update.
func (m *Metrics) OrderTransitioned(from, to order.Status, r role.Role) {
	m.orderTransitions.WithLabelValues(from.String(), to.String(), string(r)).Inc()
}

// SetLowStock records the size of the latest low-stock report.
func (m *Metrics) SetLowStock(n int) {
	m.lowStockRecords.Set(float64(n))
}

// Middleware records request count, latency and concurrency per route
// template. Requests to skipPaths are not recorded.
func (m *Metrics) Middleware(skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if skip[route] || skip[c.Request().URL.Path] {
				return next(c)
			}
			if route == "" {
				route = "unmatched"
			}

			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			method := c.Request().Method
			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
