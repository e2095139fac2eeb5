package surface

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"

	"github.com/c9s/wavegif/pkg/types"
)

var _ Surface = &ChromedpSurface{}

// ChromedpLauncher launches one headless chrome process per surface and
// drives it over the devtools protocol.
type ChromedpLauncher struct {
	Options Options
}

func NewChromedpLauncher(options Options) *ChromedpLauncher {
	return &ChromedpLauncher{Options: options.withDefaults()}
}

func (l *ChromedpLauncher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
		chromedp.WindowSize(l.Options.Width, l.Options.Height),
	)

	if !l.Options.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if len(l.Options.ChromePath) > 0 {
		opts = append(opts, chromedp.ExecPath(l.Options.ChromePath))
	}

	return opts
}

// Launch starts the browser process. The process lives until Close is called
// or ctx is canceled.
func (l *ChromedpLauncher) Launch(ctx context.Context) (Surface, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, l.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// an empty run starts the browser so that launch failures are reported here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, errors.Wrap(err, "launch chrome")
	}

	return &ChromedpSurface{
		options:     l.Options,
		ctx:         browserCtx,
		cancel:      cancelBrowser,
		cancelAlloc: cancelAlloc,
	}, nil
}

type ChromedpSurface struct {
	options Options

	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc

	initialized bool
	closeOnce   sync.Once
	closed      bool
}

// run executes the actions on the browser tab. The deadline of the caller's
// context is carried over, the tab context itself can not be replaced.
func (s *ChromedpSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed {
		return ErrClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx := s.ctx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(runCtx, deadline)
		defer cancel()
	}

	return chromedp.Run(runCtx, actions...)
}

func (s *ChromedpSurface) Initialize(ctx context.Context, dataset types.ChartDataset) error {
	html, err := RenderPage(PageData{
		Width:   s.options.Width,
		Height:  s.options.Height,
		Dataset: dataset,
	})
	if err != nil {
		return errors.Wrap(err, "render chart page")
	}

	err = s.run(ctx,
		chromedp.EmulateViewport(int64(s.options.Width), int64(s.options.Height)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}

			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
	)
	if err != nil {
		return errors.Wrap(err, "set chart page content")
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.options.ReadyTimeout)
	defer cancel()

	var ready bool
	err = s.run(waitCtx,
		chromedp.WaitReady("canvas", chromedp.ByQuery),
		chromedp.Poll(readyScript, &ready),
	)
	if err != nil {
		return errors.Wrap(err, "wait for chart canvas")
	}

	s.initialized = true
	return nil
}

func (s *ChromedpSurface) UpdateOverlay(ctx context.Context, points []types.WavePoint) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	script, err := updateChartScript(points)
	if err != nil {
		return err
	}

	var ok bool
	if err := s.run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return errors.Wrap(err, "evaluate updateChart")
	}

	return nil
}

func (s *ChromedpSurface) CaptureRaster(ctx context.Context) ([]byte, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, errors.Wrap(err, "capture screenshot")
	}

	return buf, nil
}

// Close closes the browser gracefully and then kills the allocated process.
func (s *ChromedpSurface) Close() (err error) {
	s.closeOnce.Do(func() {
		s.closed = true
		err = chromedp.Cancel(s.ctx)
		s.cancel()
		s.cancelAlloc()
	})
	return err
}
