package sstv

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects transmission statistics.  A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	images       prometheus.Counter
	segments     *prometheus.CounterVec
	tickDuration prometheus.Histogram
	overruns     prometheus.Counter
	active       prometheus.Gauge
	pttErrors    prometheus.Counter
}

func NewMetrics() *Metrics {
	var m = &Metrics{
		registry: prometheus.NewRegistry(),
		images: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sstv_images_total",
			Help: "Images transmitted",
		}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sstv_segments_total",
			Help: "Scan segments transmitted",
		}, []string{"kind"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sstv_tick_duration_seconds",
			Help:    "Execution time of the pixel clock callback",
			Buckets: []float64{1e-6, 5e-6, 10e-6, 25e-6, 50e-6, 100e-6, 150e-6, 190e-6, 500e-6},
		}),
		overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sstv_tick_overruns_total",
			Help: "Pixel clock callbacks that took a whole pixel period or longer",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sstv_transmitting",
			Help: "1 while an image is being sent",
		}),
		pttErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sstv_ptt_errors_total",
			Help: "Failures to key or unkey the transmitter",
		}),
	}

	m.registry.MustRegister(m.images, m.segments, m.tickDuration, m.overruns, m.active, m.pttErrors)

	// Pre-create label values so they show up as zero.
	for _, k := range []SegmentKind{SegmentLuminance, SegmentRedDiff, SegmentBlueDiff} {
		m.segments.WithLabelValues(k.String())
	}

	return m
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) imageSent() {
	if m == nil {
		return
	}

	m.images.Inc()
}

func (m *Metrics) segmentSent(seg ScanSegment) {
	if m == nil {
		return
	}

	m.segments.WithLabelValues(seg.Kind.String()).Inc()
}

func (m *Metrics) transmitting(on bool) {
	if m == nil {
		return
	}

	if on {
		m.active.Set(1)
	} else {
		m.active.Set(0)
	}
}

func (m *Metrics) pttError() {
	if m == nil {
		return
	}

	m.pttErrors.Inc()
}

// InstrumentTimer measures every callback run by t.
func (m *Metrics) InstrumentTimer(t PeriodicTimer) PeriodicTimer {
	return &instrumentedTimer{PeriodicTimer: t, m: m}
}

type instrumentedTimer struct {
	PeriodicTimer
	m *Metrics
}

func (it *instrumentedTimer) Arm(interval time.Duration, fn func()) {
	it.PeriodicTimer.Arm(interval, func() {
		var start = time.Now()

		fn()

		var took = time.Since(start)
		it.m.tickDuration.Observe(took.Seconds())

		if took >= interval {
			it.m.overruns.Inc()
		}
	})
}
