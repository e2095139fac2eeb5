package surface

import (
	"bytes"
	"context"

	"github.com/pkg/errors"

	"github.com/c9s/wavegif/pkg/chart"
	"github.com/c9s/wavegif/pkg/types"
)

var _ Surface = &GoChartSurface{}

// GoChartLauncher renders the chart in process with go-chart. No browser is
// involved, which makes it the driver for hosts without chrome.
type GoChartLauncher struct {
	Options Options
}

func NewGoChartLauncher(options Options) *GoChartLauncher {
	return &GoChartLauncher{Options: options.withDefaults()}
}

func (l *GoChartLauncher) Launch(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &GoChartSurface{options: l.Options}, nil
}

type GoChartSurface struct {
	options Options

	dataset     types.ChartDataset
	initialized bool
	closed      bool
}

func (s *GoChartSurface) Initialize(ctx context.Context, dataset types.ChartDataset) error {
	if s.closed {
		return ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.dataset = dataset.WithCorrective(len(dataset.CorrectiveWave))
	s.initialized = true
	return nil
}

func (s *GoChartSurface) UpdateOverlay(ctx context.Context, points []types.WavePoint) error {
	if s.closed {
		return ErrClosed
	}

	if !s.initialized {
		return ErrNotInitialized
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.dataset.CorrectiveWave = append([]types.WavePoint{}, points...)
	return nil
}

func (s *GoChartSurface) CaptureRaster(ctx context.Context) ([]byte, error) {
	if s.closed {
		return nil, ErrClosed
	}

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas := chart.NewCanvas(s.options.Width, s.options.Height)
	canvas.Plot(s.dataset)

	var buf bytes.Buffer
	if err := canvas.Render(&buf); err != nil {
		return nil, errors.Wrap(err, "render go-chart canvas")
	}

	return buf.Bytes(), nil
}

func (s *GoChartSurface) Close() error {
	s.closed = true
	return nil
}
