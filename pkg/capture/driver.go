package capture

import (
	"context"
	"image"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/wavegif/pkg/surface"
	"github.com/c9s/wavegif/pkg/types"
)

var log = logrus.WithField("component", "capture")

// FrameSink receives the captured frames in order. *gifenc.Encoder implements it.
type FrameSink interface {
	AppendFrame(img image.Image, delay time.Duration) error
}

type Driver struct {
	Plan Plan

	Width  int
	Height int

	Logger logrus.FieldLogger
}

func NewDriver() *Driver {
	return &Driver{
		Plan:   DefaultPlan,
		Width:  surface.DefaultWidth,
		Height: surface.DefaultHeight,
		Logger: log,
	}
}

// CaptureAnimation captures the default plan with an 800x600 canvas.
func CaptureAnimation(ctx context.Context, s surface.Surface, ds types.ChartDataset, sink FrameSink) ([]types.Frame, error) {
	return NewDriver().Capture(ctx, s, ds, sink)
}

// Capture initializes the surface with the first step's corrective points,
// then captures one frame per step. A step mutates the surface only when its
// corrective point count differs from the current state. The steps run
// strictly in sequence, the first error aborts the capture.
func (d *Driver) Capture(ctx context.Context, s surface.Surface, ds types.ChartDataset, sink FrameSink) ([]types.Frame, error) {
	if err := d.Plan.Validate(len(ds.CorrectiveWave)); err != nil {
		return nil, err
	}

	logger := d.Logger
	if logger == nil {
		logger = log
	}

	current := d.Plan[0].CorrectivePoints
	if err := s.Initialize(ctx, ds.WithCorrective(current)); err != nil {
		return nil, errors.Wrap(err, "initialize render surface")
	}

	frames := make([]types.Frame, 0, len(d.Plan))
	for i, step := range d.Plan {
		if step.CorrectivePoints != current {
			if err := s.UpdateOverlay(ctx, ds.CorrectivePrefix(step.CorrectivePoints)); err != nil {
				return nil, errors.Wrapf(err, "update overlay of frame %d", i)
			}
			current = step.CorrectivePoints
		}

		raw, err := s.CaptureRaster(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "capture frame %d", i)
		}

		img, err := surface.ReadRaster(raw, d.Width, d.Height)
		if err != nil {
			return nil, errors.Wrapf(err, "read frame %d", i)
		}

		if sink != nil {
			if err := sink.AppendFrame(img, step.Delay); err != nil {
				return nil, errors.Wrapf(err, "append frame %d", i)
			}
		}

		logger.Debugf("captured frame #%d with %d corrective points, delay %s", i, current, step.Delay)

		frames = append(frames, types.Frame{
			Index:            i,
			Image:            img,
			Delay:            step.Delay,
			CorrectivePoints: current,
		})
	}

	return frames, nil
}
