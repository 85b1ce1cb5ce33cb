package sstv

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Metrics_Encoder(t *testing.T) {
	var m = NewMetrics()

	encode(t, NewPD120Canvas(), m)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.images), 0)
	assert.InDelta(t, float64(ImageHeight), testutil.ToFloat64(m.segments.WithLabelValues("Y")), 0)
	assert.InDelta(t, float64(ImageHeight/2), testutil.ToFloat64(m.segments.WithLabelValues("R-Y")), 0)
	assert.InDelta(t, float64(ImageHeight/2), testutil.ToFloat64(m.segments.WithLabelValues("B-Y")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.active), 0)

	var rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body = rec.Body.String()
	var ticks = 2 * ImageHeight * (ImageWidth + 1)

	assert.Contains(t, body, "sstv_images_total 1")
	assert.Contains(t, body, "sstv_tick_duration_seconds_count "+strconv.Itoa(ticks))
	assert.Contains(t, body, "sstv_tick_overruns_total")
	assert.Contains(t, body, "sstv_transmitting 0")
}

func Test_Metrics_Nil(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.imageSent()
		m.segmentSent(LuminanceSegment(0))
		m.transmitting(true)
		m.pttError()
	})
}

func Test_Metrics_Overrun(t *testing.T) {
	var m = NewMetrics()
	var vt = new(virtualTransmitter)

	var timer = m.InstrumentTimer(vt)

	var n = 0
	timer.Arm(0, func() {
		n++
		if n == 3 {
			timer.Disarm()
		}
	})

	// Any callback takes at least a zero interval.
	assert.InDelta(t, 3.0, testutil.ToFloat64(m.overruns), 0)
}
