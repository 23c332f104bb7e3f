// Package metrics defines the Prometheus collectors of the store. They are
// registered with the default registry on import and exposed by the ops
// endpoint when it is enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store"

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user" or "bad_password"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts customer accounts created by registration or restore.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of customer accounts registered.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogGames tracks the current number of games in the catalog.
var CatalogGames = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_games",
		Help:      "Current number of games in the catalog.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOperationsTotal counts cart mutations.
// Label:
//   - op: "add" or "remove"
var CartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "success", "empty_cart", "invalid_payment" or "out_of_stock"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// RevenueTotal accumulates the totals of successful checkouts in currency units.
var RevenueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_total",
		Help:      "Sum of successful checkout totals.",
	},
)

// CheckoutItems observes how many entries each successful checkout drained.
var CheckoutItems = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_items",
		Help:      "Number of cart entries per successful checkout.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13},
	},
)
