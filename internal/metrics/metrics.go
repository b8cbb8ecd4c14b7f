package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы маршрутизации отдельной тревоги
const (
	OutcomeAssigned      = "assigned"
	OutcomeUnassigned    = "unassigned"
	OutcomeUnrouted      = "unrouted"
	OutcomePersistFailed = "persist_failed"
)

// Collector собирает метрики подсистемы маршрутизации тревог.
// Все методы безопасны для nil-получателя.
type Collector struct {
	gatherer prometheus.Gatherer

	AlertsRouted      *prometheus.CounterVec
	LookupDurations   *prometheus.HistogramVec
	TriggersEvaluated *prometheus.CounterVec
	Reconciled        *prometheus.CounterVec
}

// NewCollector регистрирует метрики в переданном регистраторе (по умолчанию глобальный)
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	routed, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_routed_total",
		Help: "Alerts produced by the router, labeled by department, role (primary|supporting) and outcome.",
	}, []string{"department", "role", "outcome"}), "alerts_routed_total")
	if err != nil {
		return nil, err
	}

	lookups, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "station_lookup_duration_seconds",
		Help:    "Nearest-station lookup latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 3},
	}, []string{"department"}), "station_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	triggers, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "triggers_evaluated_total",
		Help: "Emergency triggers produced from device readings, labeled by trigger type.",
	}, []string{"type"}), "triggers_evaluated_total")
	if err != nil {
		return nil, err
	}

	reconciled, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alerts_reconciled_total",
		Help: "Unassigned alerts processed by the reconciliation sweep, labeled by result.",
	}, []string{"result"}), "alerts_reconciled_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		AlertsRouted:      routed,
		LookupDurations:   lookups,
		TriggersEvaluated: triggers,
		Reconciled:        reconciled,
	}, nil
}

func (c *Collector) ObserveAlert(department, role, outcome string) {
	if c == nil || c.AlertsRouted == nil {
		return
	}
	c.AlertsRouted.WithLabelValues(department, role, outcome).Inc()
}

func (c *Collector) ObserveLookup(department string, d time.Duration) {
	if c == nil || c.LookupDurations == nil {
		return
	}
	c.LookupDurations.WithLabelValues(department).Observe(d.Seconds())
}

func (c *Collector) ObserveTrigger(triggerType string) {
	if c == nil || c.TriggersEvaluated == nil {
		return
	}
	c.TriggersEvaluated.WithLabelValues(triggerType).Inc()
}

func (c *Collector) ObserveReconcile(result string) {
	if c == nil || c.Reconciled == nil {
		return
	}
	c.Reconciled.WithLabelValues(result).Inc()
}

// Handler отдает /metrics
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
