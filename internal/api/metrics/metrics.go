// Package metrics defines the custom Prometheus metrics for the admin API.
// It is the single source of truth for metric names, labels, and help strings.
// promauto registers everything with the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commerce_admin"

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success", "failure", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - provider: "email", "phone", or "google"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by sign-up provider.",
	},
	[]string{"provider"},
)

// OrdersCreatedTotal counts newly created orders.
// Label:
//   - payment_method: "COD" or "Online"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment method.",
	},
	[]string{"payment_method"},
)

// OrderStatusUpdatesTotal counts status transitions applied to orders.
// Label:
//   - status: the new order status
var OrderStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_updates_total",
		Help:      "Total number of order status updates, by new status.",
	},
	[]string{"status"},
)

// PaymentsVerifiedTotal counts payment verification outcomes.
// Label:
//   - result: "verified" or "mismatch"
var PaymentsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_verified_total",
		Help:      "Total number of payment verification attempts, by result.",
	},
	[]string{"result"},
)
