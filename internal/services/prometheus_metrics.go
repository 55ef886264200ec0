package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	transferAmount    prometheus.Histogram
	accountsOpened    *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		operationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations by outcome",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_operation_duration_milliseconds",
				Help:    "Ledger operation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"operation"},
		),
		transferAmount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transfer_amount",
				Help:    "Transfer amount in base currency units",
				Buckets: prometheus.ExponentialBuckets(1, 10, 8),
			},
		),
		accountsOpened: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_accounts_opened_total",
				Help: "Total number of accounts opened by kind",
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) RecordOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) ObserveOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(float64(duration.Milliseconds()))
}

func (m *PrometheusMetrics) RecordTransferAmount(amount float64) {
	m.transferAmount.Observe(amount)
}

func (m *PrometheusMetrics) RecordAccountOpened(kind string) {
	m.accountsOpened.WithLabelValues(kind).Inc()
}
