package render

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/c9s/wavegif/pkg/capture"
	"github.com/c9s/wavegif/pkg/dataset"
	"github.com/c9s/wavegif/pkg/gifenc"
	"github.com/c9s/wavegif/pkg/metrics"
	"github.com/c9s/wavegif/pkg/surface"
	"github.com/c9s/wavegif/pkg/types"
)

var log = logrus.WithField("component", "render")

// Result is the output of one render. It is owned by the caller of the
// renderer, nothing of it is shared with other renders.
type Result struct {
	ID     string
	GIF    []byte
	Frames []types.Frame
}

type WriteFunc func(result *Result) error

type Renderer struct {
	Launcher surface.Launcher

	// Driver is the driver name used for the metrics labels
	Driver string

	Encoder gifenc.Options
	Plan    capture.Plan

	// Dataset produces the chart data of a render, defaults to the mock dataset
	Dataset func() types.ChartDataset

	// Timeout bounds a whole render when positive
	Timeout time.Duration

	// Progress is called after each captured frame with the captured and planned frame counts
	Progress func(captured, total int)

	// limiter bounds the simultaneous renders, nil is unbounded
	limiter *semaphore.Weighted
}

func NewRenderer(launcher surface.Launcher, driver string) *Renderer {
	return &Renderer{
		Launcher: launcher,
		Driver:   driver,
		Encoder:  gifenc.DefaultOptions(),
		Plan:     capture.DefaultPlan,
		Dataset:  dataset.Produce,
	}
}

// SetMaxConcurrency bounds the number of simultaneous renders, n <= 0 removes the bound.
func (r *Renderer) SetMaxConcurrency(n int) {
	if n <= 0 {
		r.limiter = nil
		return
	}

	r.limiter = semaphore.NewWeighted(int64(n))
}

// Render renders one animated gif.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	var result *Result
	err := r.RenderTo(ctx, func(res *Result) error {
		result = res
		return nil
	})
	return result, err
}

// RenderTo launches a fresh render surface, captures the animation, encodes
// it and hands the result to write. The surface is released after write
// returns, and on every failure path.
func (r *Renderer) RenderTo(ctx context.Context, write WriteFunc) (err error) {
	id := RequestIDFromContext(ctx)
	logger := log.WithField("render", id)

	state := StateStart
	transition := func(next State) {
		logger.Debugf("render state %s -> %s", state, next)
		state = next
	}

	startTime := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
			logger.WithError(err).Errorf("render failed in state %s", state)
			transition(StateFailed)
		}

		metrics.RenderDurationMetrics.WithLabelValues(r.Driver, result).Observe(time.Since(startTime).Seconds())
		metrics.RendersTotalMetrics.WithLabelValues(r.Driver, result).Inc()
	}()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if r.limiter != nil {
		if err := r.limiter.Acquire(ctx, 1); err != nil {
			return errors.Wrap(err, "wait for a render slot")
		}
		defer r.limiter.Release(1)
	}

	s, err := r.Launcher.Launch(ctx)
	if err != nil {
		return errors.Wrap(err, "launch render surface")
	}

	metrics.ActiveSurfacesMetrics.WithLabelValues(r.Driver).Inc()
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			logger.WithError(closeErr).Errorf("render surface close error")
		}
		metrics.ActiveSurfacesMetrics.WithLabelValues(r.Driver).Dec()
	}()

	transition(StateBrowserLaunched)

	captured := 0
	tracked := &trackedSurface{
		Surface: s,
		onReady: func() { transition(StateSurfaceReady) },
		onCapture: func() {
			if state != StateCapturing {
				transition(StateCapturing)
			}
		},
		onCaptured: func() {
			captured++
			metrics.CapturedFramesMetrics.WithLabelValues(r.Driver).Inc()
			if r.Progress != nil {
				r.Progress(captured, len(r.Plan))
			}
		},
	}

	encoder := gifenc.New(r.Encoder)
	driver := &capture.Driver{
		Plan:   r.Plan,
		Width:  r.Encoder.Width,
		Height: r.Encoder.Height,
		Logger: logger,
	}

	produce := r.Dataset
	if produce == nil {
		produce = dataset.Produce
	}

	frames, err := driver.Capture(ctx, tracked, produce(), encoder)
	if err != nil {
		return err
	}

	data, err := encoder.Finish()
	if err != nil {
		return err
	}

	transition(StateEncoded)
	metrics.GifSizeMetrics.WithLabelValues(r.Driver).Observe(float64(len(data)))

	if err := write(&Result{ID: id, GIF: data, Frames: frames}); err != nil {
		return errors.Wrap(err, "write gif")
	}

	transition(StateResponded)
	logger.Infof("rendered %d frames, %d bytes in %s", len(frames), len(data), time.Since(startTime))
	return nil
}

// trackedSurface reports the surface readiness and the captures to the
// render state machine.
type trackedSurface struct {
	surface.Surface

	onReady    func()
	onCapture  func()
	onCaptured func()
}

func (s *trackedSurface) Initialize(ctx context.Context, ds types.ChartDataset) error {
	if err := s.Surface.Initialize(ctx, ds); err != nil {
		return err
	}

	s.onReady()
	return nil
}

func (s *trackedSurface) CaptureRaster(ctx context.Context) ([]byte, error) {
	s.onCapture()
	data, err := s.Surface.CaptureRaster(ctx)
	if err != nil {
		return nil, err
	}

	s.onCaptured()
	return data, nil
}
