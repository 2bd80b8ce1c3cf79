package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry. A nil *Collector is a
// valid no-op receiver so tests and minimal deployments can skip metrics.
type Collector struct {
	registry          *prometheus.Registry
	movementsApplied  *prometheus.CounterVec
	movementsRejected *prometheus.CounterVec
	movementDuration  prometheus.Histogram
	accountBalance    *prometheus.GaugeVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		movementsApplied: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movements_applied_total",
			Help: "Movements applied to accounts, by movement type",
		}, []string{"movement_type"}),
		movementsRejected: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movements_rejected_total",
			Help: "Movement requests rejected before persisting, by reason",
		}, []string{"reason"}),
		movementDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_movement_duration_seconds",
			Help:    "Time taken to validate, apply and persist a movement",
			Buckets: prometheus.DefBuckets,
		}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Last persisted balance per account",
		}, []string{"account_number"}),
	}
}

func (c *Collector) MovementApplied(movementType string, seconds float64) {
	if c == nil {
		return
	}
	c.movementsApplied.WithLabelValues(movementType).Inc()
	c.movementDuration.Observe(seconds)
}

func (c *Collector) MovementRejected(reason string) {
	if c == nil {
		return
	}
	c.movementsRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) SetAccountBalance(accountNumber string, balance float64) {
	if c == nil {
		return
	}
	c.accountBalance.WithLabelValues(accountNumber).Set(balance)
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
