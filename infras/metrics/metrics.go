package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agenda"

const (
	DirectionPublished = "published"
	DirectionConsumed  = "consumed"
)

// Metrics exposes counters and histograms for the webhook dialogue, the slot
// reservation transaction and the session store. A nil *Metrics is a no-op.
type Metrics struct {
	registry         *prometheus.Registry
	turnsTotal       *prometheus.CounterVec
	turnLatency      *prometheus.HistogramVec
	reservationTotal *prometheus.CounterVec
	sessionOpsTotal  *prometheus.CounterVec
	sessionEvictions prometheus.Counter
	eventsTotal      *prometheus.CounterVec
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = NewRegistry()
	}

	m := &Metrics{
		registry: reg,
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "turns_total",
			Help:      "Total dialogue turns by intent and outcome",
		}, []string{"intent", "outcome"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "turn_latency_seconds",
			Help:      "Latency of dialogue turn processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
		reservationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "transitions_total",
			Help:      "Slot reservation and release attempts by operation and result",
		}, []string{"operation", "result"}),
		sessionOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Session store operations by backend and operation",
		}, []string{"backend", "operation"}),
		sessionEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "evictions_total",
			Help:      "Drafts evicted from the in-memory session store",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "schedule_total",
			Help:      "Schedule events by type, direction and status",
		}, []string{"type", "direction", "status"}),
	}

	reg.MustRegister(m.turnsTotal, m.turnLatency, m.reservationTotal, m.sessionOpsTotal, m.sessionEvictions, m.eventsTotal)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveTurn(intent, outcome string, seconds float64) {
	if m == nil {
		return
	}

	m.turnsTotal.WithLabelValues(intent, outcome).Inc()
	m.turnLatency.WithLabelValues(intent).Observe(seconds)
}

func (m *Metrics) ObserveTransition(operation, result string) {
	if m == nil {
		return
	}

	m.reservationTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) ObserveSession(backend, operation string) {
	if m == nil {
		return
	}

	m.sessionOpsTotal.WithLabelValues(backend, operation).Inc()
}

func (m *Metrics) ObserveEviction() {
	if m == nil {
		return
	}

	m.sessionEvictions.Inc()
}

func (m *Metrics) ObserveEvent(eventType, direction, status string) {
	if m == nil {
		return
	}

	m.eventsTotal.WithLabelValues(eventType, direction, status).Inc()
}
