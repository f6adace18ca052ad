package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus коллекторов сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	SlotsReturned     *prometheus.HistogramVec
	HoldOutcomes      *prometheus.CounterVec
	BookingsConfirmed *prometheus.CounterVec
	HoldsSwept        *prometheus.CounterVec
	OutboxPublished   *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		SlotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "availability_slots_returned",
			Help:    "Number of slots returned by an availability query",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 80, 160},
		}, []string{"service"}),
		HoldOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_hold_outcomes_total",
			Help: "Hold attempts by outcome",
		}, []string{"service", "outcome"}),
		BookingsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Number of confirmed bookings",
		}, []string{"service"}),
		HoldsSwept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_holds_swept_total",
			Help: "Number of expired holds removed by the sweeper",
		}, []string{"service"}),
		OutboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events publish attempts by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConns,
		m.DBInUseConns,
		m.DBIdleConns,
		m.DBWaitCount,
		m.SlotsReturned,
		m.HoldOutcomes,
		m.BookingsConfirmed,
		m.HoldsSwept,
		m.OutboxPublished,
	)

	return m
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует длительность и результат SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// ObserveSlots фиксирует количество найденных слотов
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsReturned.WithLabelValues(m.serviceName).Observe(float64(count))
}

// IncHoldOutcome увеличивает счетчик результатов создания холдов
func (m *Metrics) IncHoldOutcome(outcome string) {
	if m == nil {
		return
	}
	m.HoldOutcomes.WithLabelValues(m.serviceName, outcome).Inc()
}

// IncBookingsConfirmed увеличивает счетчик подтвержденных бронирований
func (m *Metrics) IncBookingsConfirmed() {
	if m == nil {
		return
	}
	m.BookingsConfirmed.WithLabelValues(m.serviceName).Inc()
}

// AddHoldsSwept добавляет количество удаленных холдов
func (m *Metrics) AddHoldsSwept(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.HoldsSwept.WithLabelValues(m.serviceName).Add(float64(n))
}

// IncOutboxPublished увеличивает счетчик публикаций outbox
func (m *Metrics) IncOutboxPublished(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.OutboxPublished.WithLabelValues(m.serviceName, result).Add(float64(n))
}
