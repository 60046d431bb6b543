package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMetricsRecordsOrdersAndStock(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLedgerMetrics(reg)

	m.ObserveOrder("pix", 37)
	m.ObserveOrder("pix", 10)
	m.ObserveOrder("", 5)
	m.IncRejected("insufficient_stock")
	m.SetAvailablePots("1", "M", 70)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersFinalized.WithLabelValues("pix")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersFinalized.WithLabelValues("unknown")))
	assert.Equal(t, 52.0, testutil.ToFloat64(m.salesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.finalizeRejected.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 70.0, testutil.ToFloat64(m.availablePots.WithLabelValues("1", "M")))
}

func TestLedgerMetricsNilRegistererIsNoop(t *testing.T) {
	m := NewLedgerMetrics(nil)
	assert.NotPanics(t, func() {
		m.ObserveOrder("pix", 1)
		m.IncRejected("empty_cart")
		m.SetAvailablePots("1", "P", 3)
	})

	var nilMetrics *LedgerMetrics
	assert.NotPanics(t, func() { nilMetrics.ObserveOrder("pix", 1) })
}
