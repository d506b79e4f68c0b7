package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connecthost",
		Name:      "order_status_transitions_total",
		Help:      "Order status changes, by target status.",
	}, []string{"status"})

	ReservationTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connecthost",
		Name:      "reservation_status_transitions_total",
		Help:      "Reservation status changes, by target status.",
	}, []string{"status"})

	LoyaltyPointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "connecthost",
		Name:      "loyalty_points_awarded_total",
		Help:      "Loyalty points credited to clients on check-out.",
	})

	ProductionRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "connecthost",
		Name:      "production_refreshes_total",
		Help:      "Production display refreshes; shared ones reused an in-flight fetch.",
	}, []string{"shared"})
)
