package surface

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zserge/lorca"

	"github.com/c9s/wavegif/pkg/types"
)

var _ Surface = &LorcaSurface{}

var errChartNotReady = errors.New("chart canvas is not ready")

const dataURLPrefix = "data:image/png;base64,"

var setLorcaChromeOnce sync.Once

// LorcaLauncher allocates a chrome window through lorca. lorca has no
// screenshot api, the raster is read from the canvas element itself.
type LorcaLauncher struct {
	Options Options
}

func NewLorcaLauncher(options Options) *LorcaLauncher {
	options = options.withDefaults()
	if len(options.ChromePath) > 0 {
		chromePath := options.ChromePath
		setLorcaChromeOnce.Do(func() {
			lorca.ChromeExecutable = func() string { return chromePath }
		})
	}

	return &LorcaLauncher{Options: options}
}

func (l *LorcaLauncher) args() []string {
	args := []string{
		"--no-sandbox",
		"--disable-setuid-sandbox",
		"--disable-dev-shm-usage",
		"--disable-gpu",
	}

	if l.Options.Headless {
		args = append(args, "--headless=new")
	}

	return args
}

func (l *LorcaLauncher) Launch(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// here allocate a chrome window with a blank page, the profile dir is a temp dir removed on Close
	ui, err := lorca.New("", "", l.Options.Width, l.Options.Height, l.args()...)
	if err != nil {
		return nil, errors.Wrap(err, "launch lorca chrome")
	}

	return &LorcaSurface{options: l.Options, ui: ui}, nil
}

type LorcaSurface struct {
	options Options
	ui      lorca.UI

	initialized bool
	closeOnce   sync.Once
	closed      bool
}

func (s *LorcaSurface) eval(script string) (lorca.Value, error) {
	if s.closed {
		return nil, ErrClosed
	}

	v := s.ui.Eval(script)
	if err := v.Err(); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *LorcaSurface) Initialize(ctx context.Context, dataset types.ChartDataset) error {
	if s.closed {
		return ErrClosed
	}

	html, err := RenderPage(PageData{
		Width:   s.options.Width,
		Height:  s.options.Height,
		Dataset: dataset,
	})
	if err != nil {
		return errors.Wrap(err, "render chart page")
	}

	if err := s.ui.Load("data:text/html," + url.PathEscape(html)); err != nil {
		return errors.Wrap(err, "load chart page")
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.options.ReadyTimeout)
	defer cancel()

	op := func() error {
		v, err := s.eval(readyScript)
		if err == ErrClosed {
			return backoff.Permanent(err)
		} else if err != nil {
			return err
		}

		if !v.Bool() {
			return errChartNotReady
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(backoff.NewConstantBackOff(100*time.Millisecond), waitCtx)); err != nil {
		return errors.Wrap(err, "wait for chart canvas")
	}

	s.initialized = true
	return nil
}

func (s *LorcaSurface) UpdateOverlay(ctx context.Context, points []types.WavePoint) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	script, err := updateChartScript(points)
	if err != nil {
		return err
	}

	if _, err := s.eval(script); err != nil {
		return errors.Wrap(err, "evaluate updateChart")
	}

	return nil
}

func (s *LorcaSurface) CaptureRaster(ctx context.Context) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err := s.eval(canvasDataURLScript)
	if err != nil {
		return nil, errors.Wrap(err, "read canvas data url")
	}

	return parseCanvasDataURL(v.String())
}

// parseCanvasDataURL returns the PNG bytes of a canvas.toDataURL() result.
func parseCanvasDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, dataURLPrefix) {
		return nil, errors.Errorf("unexpected canvas data url prefix: %.32q", dataURL)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, dataURLPrefix))
	if err != nil {
		return nil, errors.Wrap(err, "decode canvas data url")
	}

	return data, nil
}

func (s *LorcaSurface) Close() (err error) {
	s.closeOnce.Do(func() {
		s.closed = true
		err = s.ui.Close()
		if err != nil {
			log.WithError(err).Errorf("lorca ui close error")
		}
	})
	return err
}
