package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/store"
)

func TestPOSMetricsRecordsConfirmations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPOSMetrics(reg)

	m.ObserveConfirmed(1180, 20*time.Millisecond)
	m.IncConfirmFailure("persist")
	m.IncUnavailableRejection()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterValue(t, mfs, "pos_orders_confirmed_total", ""))
	assert.Equal(t, 1180.0, counterValue(t, mfs, "pos_confirmed_amount_yen_total", ""))
	assert.Equal(t, 1.0, counterValue(t, mfs, "pos_order_confirm_failures_total", "persist"))
	assert.Equal(t, 1.0, counterValue(t, mfs, "pos_unavailable_item_rejections_total", ""))
}

func TestPOSMetricsCountsStoreEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPOSMetrics(reg)
	st := store.New()
	st.Subscribe(m.HandleEvent)

	st.ToggleAvailability("A")
	st.ToggleAvailability("A")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, 2.0, counterValue(t, mfs, "pos_store_events_total", string(store.EventAvailabilityToggled)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *POSMetrics
	assert.NotPanics(t, func() {
		m.ObserveConfirmed(100, time.Millisecond)
		m.IncConfirmFailure("")
		m.IncUnavailableRejection()
		m.HandleEvent(store.Event{Kind: store.EventMenuUpdated})
	})

	empty := NewPOSMetrics(nil)
	assert.NotPanics(t, func() { empty.ObserveConfirmed(100, time.Millisecond) })
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, labelValue string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelValue == "" {
				return metric.GetCounter().GetValue()
			}
			for _, lp := range metric.GetLabel() {
				if lp.GetValue() == labelValue {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, labelValue)
	return 0
}
