package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics exposes Prometheus observability primitives for invio.
type Metrics struct {
	invoicesCreated *prometheus.CounterVec
	invoiceAmount   prometheus.Histogram
}

// NewMetrics registers and returns Prometheus metrics.
func NewMetrics() *Metrics {
	invoicesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invio_invoices_total",
		Help: "Invoices created by outcome.",
	}, []string{"outcome"})

	invoiceAmount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invio_invoice_grand_total",
		Help:    "Grand total distribution of committed invoices.",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	})

	prometheus.MustRegister(
		invoicesCreated,
		invoiceAmount,
	)

	return &Metrics{
		invoicesCreated: invoicesCreated,
		invoiceAmount:   invoiceAmount,
	}
}

func (m *Metrics) RecordInvoiceCreated(grandTotal decimal.Decimal) {
	if m == nil {
		return
	}
	m.invoicesCreated.WithLabelValues("committed").Inc()
	amount, _ := grandTotal.Float64()
	m.invoiceAmount.Observe(amount)
}

func (m *Metrics) RecordInvoiceRejected() {
	if m == nil {
		return
	}
	m.invoicesCreated.WithLabelValues("rejected").Inc()
}
