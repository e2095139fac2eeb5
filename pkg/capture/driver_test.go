package capture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/c9s/wavegif/pkg/dataset"
	"github.com/c9s/wavegif/pkg/gifenc"
	"github.com/c9s/wavegif/pkg/surface"
	"github.com/c9s/wavegif/pkg/surface/mocks"
)

type recordingSink struct {
	delays []time.Duration
	sizes  []image.Rectangle
}

func (r *recordingSink) AppendFrame(img image.Image, delay time.Duration) error {
	r.delays = append(r.delays, delay)
	r.sizes = append(r.sizes, img.Bounds())
	return nil
}

func rasterPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	img.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPlan_Validate(t *testing.T) {
	assert.NoError(t, DefaultPlan.Validate(dataset.NumCorrectivePoints))
	assert.Error(t, DefaultPlan.Validate(3))
	assert.Error(t, Plan{}.Validate(4))
	assert.Error(t, Plan{{CorrectivePoints: 2, Delay: FrameDelay}, {CorrectivePoints: 1, Delay: FrameDelay}}.Validate(4))
	assert.Error(t, Plan{{CorrectivePoints: 0}}.Validate(4))
}

func TestDefaultPlan(t *testing.T) {
	require.Len(t, DefaultPlan, 5)

	var points []int
	for _, step := range DefaultPlan[:4] {
		points = append(points, step.CorrectivePoints)
		assert.Equal(t, 500*time.Millisecond, step.Delay)
	}
	points = append(points, DefaultPlan[4].CorrectivePoints)

	assert.Equal(t, []int{0, 2, 3, 4, 4}, points)
	assert.Equal(t, 2*time.Second, DefaultPlan[4].Delay)
	assert.Greater(t, DefaultPlan[4].Delay, DefaultPlan[3].Delay)
}

func TestCaptureAnimation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	ctx := context.Background()
	ds := dataset.Produce()
	raster := rasterPNG(t)

	s := mocks.NewMockSurface(mockCtrl)
	gomock.InOrder(
		s.EXPECT().Initialize(ctx, ds.WithCorrective(0)).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
		s.EXPECT().UpdateOverlay(ctx, ds.CorrectiveWave[:2]).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
		s.EXPECT().UpdateOverlay(ctx, ds.CorrectiveWave[:3]).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
		s.EXPECT().UpdateOverlay(ctx, ds.CorrectiveWave).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
		// the hold frame is a capture only
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
	)

	sink := &recordingSink{}
	frames, err := CaptureAnimation(ctx, s, ds, sink)
	require.NoError(t, err)
	require.Len(t, frames, 5)

	var revealed []int
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, image.Rect(0, 0, 800, 600), f.Image.Bounds())
		revealed = append(revealed, f.CorrectivePoints)
	}
	assert.Equal(t, []int{0, 2, 3, 4, 4}, revealed)

	assert.Equal(t, []time.Duration{FrameDelay, FrameDelay, FrameDelay, FrameDelay, HoldDelay}, sink.delays)
	for _, size := range sink.sizes {
		assert.Equal(t, image.Rect(0, 0, 800, 600), size)
	}
}

func TestCaptureAnimation_AbortOnCaptureError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	ctx := context.Background()
	ds := dataset.Produce()
	raster := rasterPNG(t)

	s := mocks.NewMockSurface(mockCtrl)
	gomock.InOrder(
		s.EXPECT().Initialize(ctx, gomock.Any()).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(raster, nil),
		s.EXPECT().UpdateOverlay(ctx, gomock.Any()).Return(nil),
		s.EXPECT().CaptureRaster(ctx).Return(nil, errors.New("screenshot failed")),
	)

	sink := &recordingSink{}
	frames, err := CaptureAnimation(ctx, s, ds, sink)
	assert.Nil(t, frames)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capture frame 1")
	assert.Contains(t, err.Error(), "screenshot failed")
	assert.Len(t, sink.delays, 1)
}

func TestCaptureAnimation_InitializeError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	ctx := context.Background()
	s := mocks.NewMockSurface(mockCtrl)
	s.EXPECT().Initialize(ctx, gomock.Any()).Return(errors.New("canvas not found"))

	_, err := CaptureAnimation(ctx, s, dataset.Produce(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canvas not found")
}

func TestCaptureAnimation_GoChartRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := surface.NewGoChartLauncher(surface.DefaultOptions()).Launch(ctx)
	require.NoError(t, err)
	defer s.Close()

	enc := gifenc.New(gifenc.DefaultOptions())
	frames, err := CaptureAnimation(ctx, s, dataset.Produce(), enc)
	require.NoError(t, err)
	assert.Len(t, frames, 5)
	assert.Equal(t, 5, enc.Len())

	out, err := enc.Finish()
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
