package surface

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/c9s/wavegif/pkg/types"
)

//go:generate mockgen -destination=mocks/mock_surface.go -package=mocks . Surface,Launcher

const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultReadyTimeout = 30 * time.Second
)

var (
	ErrClosed         = errors.New("render surface is closed")
	ErrNotInitialized = errors.New("render surface is not initialized")
)

// Surface is a handle of an isolated render environment that draws the chart.
// A surface is owned by one request and must be closed by its owner.
type Surface interface {
	// Initialize draws the dataset and blocks until the canvas is ready for capture.
	Initialize(ctx context.Context, dataset types.ChartDataset) error

	// UpdateOverlay replaces the corrective wave series and redraws the chart.
	UpdateOverlay(ctx context.Context, points []types.WavePoint) error

	// CaptureRaster returns the PNG encoded still of the current state.
	CaptureRaster(ctx context.Context) ([]byte, error)

	Close() error
}

// Launcher acquires a fresh render environment.
type Launcher interface {
	Launch(ctx context.Context) (Surface, error)
}

type Options struct {
	// ChromePath overrides the chrome executable lookup of the browser drivers
	ChromePath string

	Width  int
	Height int

	// Headless is true by default, the browser window is only shown for debugging
	Headless bool

	// ReadyTimeout bounds the wait for the canvas element
	ReadyTimeout time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Headless:     true,
		ReadyTimeout: DefaultReadyTimeout,
	}
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = DefaultReadyTimeout
	}
	return o
}
