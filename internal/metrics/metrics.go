// Package metrics holds the detector's prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"gifts_buyer/internal/domain/entity"
)

const namespace = "gifts_buyer"

type Metrics struct {
	registry *prometheus.Registry

	Cycles              prometheus.Counter
	CycleFailures       prometheus.Counter
	CycleDuration       prometheus.Histogram
	NewGifts            prometheus.Counter
	Exclusions          *prometheus.CounterVec
	RangeMismatches     prometheus.Counter
	UnitsPurchased      prometheus.Counter
	PurchaseErrors      *prometheus.CounterVec
	NotificationsFailed prometheus.Counter
	Balance             prometheus.Gauge
}

// New registers all collectors on a private registry, so several
// instances can live in one process.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Detection cycles started.",
		}),
		CycleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycle_failures_total",
			Help:      "Detection cycles that ended with an error.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Detection cycle duration.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		NewGifts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "new_gifts_total",
			Help:      "Gifts seen for the first time.",
		}),
		Exclusions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exclusions_total",
			Help:      "New gifts skipped by an exclusion rule.",
		}, []string{"reason"}),
		RangeMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_mismatches_total",
			Help:      "New gifts not covered by any configured range.",
		}),
		UnitsPurchased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_purchased_total",
			Help:      "Gift units sent.",
		}),
		PurchaseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_errors_total",
			Help:      "Purchase runs stopped by an error.",
		}, []string{"class"}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Admin notifications that could not be delivered.",
		}),
		Balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_stars",
			Help:      "Last observed star balance.",
		}),
	}

	m.registry.MustRegister(
		m.Cycles,
		m.CycleFailures,
		m.CycleDuration,
		m.NewGifts,
		m.Exclusions,
		m.RangeMismatches,
		m.UnitsPurchased,
		m.PurchaseErrors,
		m.NotificationsFailed,
		m.Balance,
	)

	return m
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObserveCycle(started time.Time, err error) {
	m.Cycles.Inc()
	m.CycleDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		m.CycleFailures.Inc()
	}
}

func (m *Metrics) ObserveSkips(counts entity.SkipCounts) {
	m.Exclusions.WithLabelValues(string(entity.ExclusionSoldOut)).Add(float64(counts.SoldOut))
	m.Exclusions.WithLabelValues(string(entity.ExclusionNonLimited)).Add(float64(counts.NonLimited))
	m.Exclusions.WithLabelValues(string(entity.ExclusionNonUpgradable)).Add(float64(counts.NonUpgradable))
}

func (m *Metrics) ObserveOutcome(outcome entity.PurchaseOutcome) {
	m.UnitsPurchased.Add(float64(outcome.PurchasedQuantity))

	if outcome.Failure != entity.FailureNone {
		m.PurchaseErrors.WithLabelValues(string(outcome.Failure)).Inc()
	}

	m.Balance.Set(float64(outcome.BalanceAfter))
}
