package metrics

import "github.com/prometheus/client_golang/prometheus"

var RenderDurationMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "wavegif_render_duration_seconds",
		Help:    "time spent on rendering one animated chart, from launch to encoded gif",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"driver", "result"})

var RendersTotalMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wavegif_renders_total",
		Help: "number of finished renders",
	}, []string{"driver", "result"})

var ActiveSurfacesMetrics = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "wavegif_active_surfaces",
		Help: "number of launched render surfaces that are not closed yet",
	}, []string{"driver"})

var CapturedFramesMetrics = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wavegif_captured_frames_total",
		Help: "number of captured frames",
	}, []string{"driver"})

var GifSizeMetrics = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "wavegif_gif_size_bytes",
		Help:    "size of the encoded gif",
		Buckets: prometheus.ExponentialBuckets(16*1024, 2, 8),
	}, []string{"driver"})

func init() {
	prometheus.MustRegister(
		RenderDurationMetrics,
		RendersTotalMetrics,
		ActiveSurfacesMetrics,
		CapturedFramesMetrics,
		GifSizeMetrics,
	)
}
