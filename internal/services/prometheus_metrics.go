package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	ledgerOperations          *prometheus.CounterVec
	ledgerOperationDuration   prometheus.Histogram
	accountsRegistered        *prometheus.CounterVec
	paymentsTotal             *prometheus.CounterVec
	paymentDuration           prometheus.Histogram
	customersRegistered       prometheus.Counter
	customersDeactivated      prometheus.Counter
	activeAccountsTotal       prometheus.Gauge
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		ledgerOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		ledgerOperationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		accountsRegistered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_registered_total",
				Help: "Total number of accounts registered by type",
			},
			[]string{"account_type"},
		),
		paymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_total",
				Help: "Total number of boleto payments by outcome",
			},
			[]string{"status"},
		),
		paymentDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "payment_duration_milliseconds",
				Help:    "Boleto payment duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		customersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customers_registered_total",
				Help: "Total number of customers registered",
			},
		),
		customersDeactivated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "customers_deactivated_total",
				Help: "Total number of customers deactivated",
			},
		),
		activeAccountsTotal: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_accounts_total",
				Help: "Current number of active accounts",
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	operation := tags["operation"]

	switch name {
	case "ledger_operation_applied":
		m.ledgerOperations.WithLabelValues(operation, "applied").Inc()
	case "ledger_operation_rejected":
		m.ledgerOperations.WithLabelValues(operation, "rejected").Inc()
	case "account_registered":
		if accountType := tags["account_type"]; accountType != "" {
			m.accountsRegistered.WithLabelValues(accountType).Inc()
		}
	case "payment_confirmed":
		m.paymentsTotal.WithLabelValues("confirmed").Inc()
	case "payment_rejected":
		m.paymentsTotal.WithLabelValues("rejected").Inc()
	case "customer_registered":
		m.customersRegistered.Inc()
	case "customer_deactivated":
		m.customersDeactivated.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "ledger_operation":
		m.ledgerOperationDuration.Observe(float64(duration.Milliseconds()))
	case "payment":
		m.paymentDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "active_accounts" {
		m.activeAccountsTotal.Set(value)
	}
}
