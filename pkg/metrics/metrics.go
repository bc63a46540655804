package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	bookingsCreatedTotal   prometheus.Counter
	bookingConflictsTotal  prometheus.Counter
	bookingsCancelledTotal prometheus.Counter
	refundsQueuedTotal     prometheus.Counter
	refundsDispatchedTotal prometheus.Counter

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbPoolOpen      prometheus.Gauge
	dbPoolInUse     prometheus.Gauge
	dbPoolIdle      prometheus.Gauge
}

// New регистрирует коллекторы в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served.",
			ConstLabels: constLabels,
		}),

		bookingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created.",
			ConstLabels: constLabels,
		}),
		bookingConflictsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Total number of booking requests rejected due to slot conflicts.",
			ConstLabels: constLabels,
		}),
		bookingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of bookings cancelled.",
			ConstLabels: constLabels,
		}),
		refundsQueuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "refunds_queued_total",
			Help:        "Total number of refund notifications queued.",
			ConstLabels: constLabels,
		}),
		refundsDispatchedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "refunds_dispatched_total",
			Help:        "Total number of refund notifications dispatched to the payment gateway.",
			ConstLabels: constLabels,
		}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors.",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open database connections.",
			ConstLabels: constLabels,
		}),
		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of database connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle database connections.",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncInFlight увеличивает счетчик обрабатываемых запросов
func (m *Metrics) IncInFlight() { m.httpInFlight.Inc() }

// DecInFlight уменьшает счетчик обрабатываемых запросов
func (m *Metrics) DecInFlight() { m.httpInFlight.Dec() }

// IncBookingsCreated учитывает созданное бронирование
func (m *Metrics) IncBookingsCreated() { m.bookingsCreatedTotal.Inc() }

// IncBookingConflicts учитывает отказ из-за конфликта слота
func (m *Metrics) IncBookingConflicts() { m.bookingConflictsTotal.Inc() }

// IncBookingsCancelled учитывает отмену бронирования
func (m *Metrics) IncBookingsCancelled() { m.bookingsCancelledTotal.Inc() }

// IncRefundsQueued учитывает постановку возврата в очередь
func (m *Metrics) IncRefundsQueued() { m.refundsQueuedTotal.Inc() }

// IncRefundsDispatched учитывает отправленное уведомление о возврате
func (m *Metrics) IncRefundsDispatched() { m.refundsDispatchedTotal.Inc() }

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет gauges состояния connection pool
func (m *Metrics) SetDBPoolStats(open, inUse, idle int) {
	m.dbPoolOpen.Set(float64(open))
	m.dbPoolInUse.Set(float64(inUse))
	m.dbPoolIdle.Set(float64(idle))
}
