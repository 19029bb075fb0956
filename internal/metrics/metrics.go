package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	PaymentsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_submitted_total",
		Help: "Total number of payment submissions",
	})

	PaymentsDecidedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_decided_total",
		Help: "Total number of payment verifications by decision",
	}, []string{"decision"})

	CredentialsDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credentials_delivered_total",
		Help: "Total number of VPN credential deliveries",
	})

	EmailFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "email_failures_total",
		Help: "Total number of failed transactional emails by kind",
	}, []string{"kind"})
)
