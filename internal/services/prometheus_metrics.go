package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	analyticsRequests    *prometheus.CounterVec
	analyticsDuration    prometheus.Histogram
	affordabilityChecks  *prometheus.CounterVec
	insightsGenerated    prometheus.Counter
	transactionsCreated  *prometheus.CounterVec
	budgetUpdates        prometheus.Counter
	authEvents           *prometheus.CounterVec
	monthlySpendObserved prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		analyticsRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_requests_total",
				Help: "Total number of analytics requests by operation",
			},
			[]string{"operation"},
		),
		analyticsDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "analytics_request_duration_milliseconds",
				Help:    "Analytics request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		affordabilityChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "affordability_checks_total",
				Help: "Total number of affordability checks by verdict severity",
			},
			[]string{"severity"},
		),
		insightsGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "insights_generated_total",
				Help: "Total number of insight list generations",
			},
		),
		transactionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total number of transactions created by payment method",
			},
			[]string{"payment_method"},
		),
		budgetUpdates: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "budget_updates_total",
				Help: "Total number of budget replacements",
			},
		),
		authEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event"},
		),
		monthlySpendObserved: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "monthly_spend_observed",
				Help:    "Monthly spend totals observed by analytics requests",
				Buckets: prometheus.ExponentialBuckets(100, 4, 8),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "analytics_requests_total":
		if operation := tags["operation"]; operation != "" {
			m.analyticsRequests.WithLabelValues(operation).Inc()
		}
	case "affordability_checks_total":
		if severity := tags["severity"]; severity != "" {
			m.affordabilityChecks.WithLabelValues(severity).Inc()
		}
	case "insights_generated_total":
		m.insightsGenerated.Inc()
	case "transactions_created_total":
		if method := tags["payment_method"]; method != "" {
			m.transactionsCreated.WithLabelValues(method).Inc()
		}
	case "budget_updates_total":
		m.budgetUpdates.Inc()
	case "auth_events_total":
		if event := tags["event"]; event != "" {
			m.authEvents.WithLabelValues(event).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "analytics_request":
		m.analyticsDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "monthly_spend":
		m.monthlySpendObserved.Observe(value)
	}
}
