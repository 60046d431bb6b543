package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records checkout and stock activity.
type LedgerMetrics struct {
	ordersFinalized  *prometheus.CounterVec
	finalizeRejected *prometheus.CounterVec
	salesTotal       prometheus.Counter
	availablePots    *prometheus.GaugeVec
}

// NewLedgerMetrics registers the ledger metrics on reg. A nil registerer
// yields a recorder that drops everything.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	ordersFinalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_orders_finalized_total",
		Help: "Orders finalized at the register.",
	}, []string{"payment_method"})
	finalizeRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pdv_finalize_rejected_total",
		Help: "Checkout attempts rejected before any stock was consumed.",
	}, []string{"reason"})
	salesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pdv_sales_total",
		Help: "Sum of finalized order totals.",
	})
	availablePots := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pdv_stock_available_pots",
		Help: "Pots available per product size.",
	}, []string{"product_id", "size"})
	reg.MustRegister(ordersFinalized, finalizeRejected, salesTotal, availablePots)
	return &LedgerMetrics{
		ordersFinalized:  ordersFinalized,
		finalizeRejected: finalizeRejected,
		salesTotal:       salesTotal,
		availablePots:    availablePots,
	}
}

func (m *LedgerMetrics) ObserveOrder(paymentMethod string, total float64) {
	if m == nil || m.ordersFinalized == nil {
		return
	}
	m.ordersFinalized.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
	m.salesTotal.Add(total)
}

func (m *LedgerMetrics) IncRejected(reason string) {
	if m == nil || m.finalizeRejected == nil {
		return
	}
	m.finalizeRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *LedgerMetrics) SetAvailablePots(productID, size string, pots int) {
	if m == nil || m.availablePots == nil {
		return
	}
	m.availablePots.WithLabelValues(normalizeLabel(productID), normalizeLabel(size)).Set(float64(pots))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
