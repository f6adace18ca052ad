package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_HoldOutcomes(t *testing.T) {
	m := NewWithRegisterer("scheduling", prometheus.NewRegistry())

	m.IncHoldOutcome("created")
	m.IncHoldOutcome("created")
	m.IncHoldOutcome("slot_taken")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HoldOutcomes.WithLabelValues("scheduling", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HoldOutcomes.WithLabelValues("scheduling", "slot_taken")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncHoldOutcome("created")
		m.ObserveSlots(3)
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.ObserveDBQuery("select", 0.1, nil)
		m.IncBookingsConfirmed()
		m.AddHoldsSwept(2)
		m.IncOutboxPublished("ok", 1)
	})
	assert.Equal(t, "", m.ServiceName())
}
