package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ReservationCreated(0)
	m.ReservationCreated(2)
	m.ReservationRejected(ReasonNoMenuItems)
	m.StatusUpdated(true)
	m.StatusUpdated(false)
	m.StatusUpdated(false)
	m.ImageUploaded("menu", nil)
	m.ImageUploaded("menu", errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reservationsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.droppedMenuItemIDs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservationsRejected.WithLabelValues(ReasonNoMenuItems)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.reservationsRejected.WithLabelValues(ReasonNoValidIDs)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imageUploads.WithLabelValues("menu", "error")))
}

func TestMetrics_ReRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(reg)
	second := New(reg)

	first.ReservationCreated(0)
	assert.Equal(t, 1.0, testutil.ToFloat64(second.reservationsCreated))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReservationCreated(1)
		m.ReservationRejected(ReasonStoreError)
		m.StatusUpdated(true)
		m.ImageUploaded("restaurant", nil)
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
	})
}
