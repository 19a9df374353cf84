package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("booking-test", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/projects/{projectId}/available-slots", 200, 10*time.Millisecond)
	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	m.IncBookingOutcome("created")
	m.IncBookingOutcome("created")
	m.IncNotification("new_appointment", "ok")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/projects/{projectId}/available-slots", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("insert")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("select")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingOutcomes.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notificationsTotal.WithLabelValues("new_appointment", "ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("select", time.Second, nil)
		m.SetDBConnections(1, 1, 0)
		m.IncBookingOutcome("spam")
		m.IncNotification("cancelled", "error")
	})
}
