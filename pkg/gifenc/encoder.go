package gifenc

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

const (
	DefaultQuality = 20
	DefaultDelay   = 500 * time.Millisecond

	// LoopForever repeats the animation without end, -1 plays it once
	LoopForever = 0

	maxPaletteSize = 256
)

var (
	ErrFinished = errors.New("gif encoder is already finished")
	ErrNoFrames = errors.New("gif encoder has no frames")
)

type Options struct {
	Width  int
	Height int

	LoopCount int

	// Quality is the pixel sampling interval used for building the frame
	// palettes, 1 samples every pixel. Lower is better but slower.
	Quality int

	// DefaultDelay is used for frames appended without a delay
	DefaultDelay time.Duration
}

func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       600,
		LoopCount:    LoopForever,
		Quality:      DefaultQuality,
		DefaultDelay: DefaultDelay,
	}
}

// Encoder accumulates frames in call order into one animated gif.
// It is not safe for concurrent use, each animation owns its encoder.
type Encoder struct {
	options Options

	quantizer draw.Quantizer

	frames []*image.Paletted
	delays []int

	finished bool
}

func New(options Options) *Encoder {
	if options.Quality < 1 {
		options.Quality = DefaultQuality
	}

	if options.DefaultDelay <= 0 {
		options.DefaultDelay = DefaultDelay
	}

	return &Encoder{
		options:   options,
		quantizer: quantize.MedianCutQuantizer{},
	}
}

func (e *Encoder) Options() Options {
	return e.options
}

// Len returns the number of appended frames
func (e *Encoder) Len() int {
	return len(e.frames)
}

// AppendFrame quantizes img with its own palette and appends it with the
// given display duration. A non-positive delay uses the default delay.
func (e *Encoder) AppendFrame(img image.Image, delay time.Duration) error {
	if e.finished {
		return ErrFinished
	}

	b := img.Bounds()
	if b.Dx() != e.options.Width || b.Dy() != e.options.Height {
		return errors.Errorf("frame size %dx%d does not match the canvas size %dx%d", b.Dx(), b.Dy(), e.options.Width, e.options.Height)
	}

	if delay <= 0 {
		delay = e.options.DefaultDelay
	}

	palette := e.quantizer.Quantize(make(color.Palette, 0, maxPaletteSize), sample(img, e.options.Quality))
	if len(palette) == 0 {
		return errors.New("empty frame palette")
	}

	rect := image.Rect(0, 0, b.Dx(), b.Dy())
	paletted := image.NewPaletted(rect, palette)
	draw.Draw(paletted, rect, img, b.Min, draw.Src)

	e.frames = append(e.frames, paletted)
	e.delays = append(e.delays, toCentiseconds(delay))
	return nil
}

// Finish encodes the appended frames. It can only be called once.
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, ErrFinished
	}

	if len(e.frames) == 0 {
		return nil, ErrNoFrames
	}

	e.finished = true

	var buf bytes.Buffer
	err := gif.EncodeAll(&buf, &gif.GIF{
		Image:     e.frames,
		Delay:     e.delays,
		LoopCount: e.options.LoopCount,
	})

	// release the frames, the encoded buffer is all that is left
	e.frames = nil

	if err != nil {
		return nil, errors.Wrap(err, "encode gif")
	}

	return buf.Bytes(), nil
}

// sample picks every n-th pixel of img into a 1 pixel high image for the quantizer.
func sample(img image.Image, n int) image.Image {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if n <= 1 || total <= maxPaletteSize {
		return img
	}

	out := image.NewRGBA(image.Rect(0, 0, (total+n-1)/n, 1))
	x := 0
	for i := 0; i < total; i += n {
		px := b.Min.X + i%b.Dx()
		py := b.Min.Y + i/b.Dx()
		out.Set(x, 0, img.At(px, py))
		x++
	}
	return out
}

// gif delays are stored in 1/100 seconds
func toCentiseconds(d time.Duration) int {
	return int(d / (10 * time.Millisecond))
}
