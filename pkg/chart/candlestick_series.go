package chart

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/wavegif/pkg/types"
)

var (
	_ chart.Series                = &CandlestickSeries{}
	_ chart.BoundedValuesProvider = &CandlestickSeries{}
)

type CandleColors struct {
	Up        drawing.Color
	Down      drawing.Color
	Unchanged drawing.Color
}

func (c CandleColors) For(d types.Direction) drawing.Color {
	switch d {
	case types.DirectionUp:
		return c.Up
	case types.DirectionDown:
		return c.Down
	}
	return c.Unchanged
}

// CandlestickSeries draws OHLC bars. go-chart has no candlestick series, so
// the bars are drawn directly with the renderer.
type CandlestickSeries struct {
	Name   string
	Colors CandleColors

	candles []types.Candle
}

func NewCandlestickSeries(name string, candles []types.Candle, colors CandleColors) *CandlestickSeries {
	return &CandlestickSeries{
		Name:    name,
		Colors:  colors,
		candles: candles,
	}
}

func (cs *CandlestickSeries) GetName() string {
	return cs.Name
}

func (cs *CandlestickSeries) GetStyle() chart.Style {
	return chart.Style{
		StrokeWidth: 1.0,
	}
}

func (cs *CandlestickSeries) GetYAxis() chart.YAxisType {
	return chart.YAxisPrimary
}

func (cs *CandlestickSeries) Validate() error {
	if len(cs.candles) == 0 {
		return errNoCandles
	}
	return nil
}

// Len and GetBoundedValues let the chart compute the axis ranges from the
// candle wicks.
func (cs *CandlestickSeries) Len() int {
	return len(cs.candles)
}

func (cs *CandlestickSeries) GetBoundedValues(index int) (x, y1, y2 float64) {
	c := cs.candles[index]
	return timeToFloat64(c.Time), c.Low, c.High
}

func (cs *CandlestickSeries) Render(r chart.Renderer, b chart.Box, xRange, yRange chart.Range, style chart.Style) {
	drawCandles(cs.candles, cs.Colors)(r, b, xRange, yRange, style)
}

// AnnotateFunc draws directly on the canvas box with the translated ranges.
type AnnotateFunc func(chart.Renderer, chart.Box, chart.Range, chart.Range, chart.Style)

func drawCandles(candles []types.Candle, colors CandleColors) AnnotateFunc {
	return func(r chart.Renderer, b chart.Box, xRange, yRange chart.Range, style chart.Style) {
		if len(candles) == 0 {
			return
		}

		halfWidth := int(math.Max(1, float64(b.Width())/float64(len(candles))/4))

		for _, c := range candles {
			color := colors.For(c.Direction())
			x := b.Left + xRange.Translate(timeToFloat64(c.Time))
			yHigh := b.Bottom - yRange.Translate(c.High)
			yLow := b.Bottom - yRange.Translate(c.Low)
			yOpen := b.Bottom - yRange.Translate(c.Open)
			yClose := b.Bottom - yRange.Translate(c.Close)

			r.SetStrokeColor(color)
			r.SetStrokeWidth(style.StrokeWidth)
			r.SetStrokeDashArray(nil)

			// wick
			r.MoveTo(x, yHigh)
			r.LineTo(x, yLow)
			r.Stroke()

			// body
			top, bottom := yOpen, yClose
			if top > bottom {
				top, bottom = bottom, top
			}
			if top == bottom {
				bottom++
			}

			r.SetFillColor(color.WithAlpha(128))
			r.MoveTo(x-halfWidth, top)
			r.LineTo(x+halfWidth, top)
			r.LineTo(x+halfWidth, bottom)
			r.LineTo(x-halfWidth, bottom)
			r.LineTo(x-halfWidth, top)
			r.Close()
			r.FillStroke()
		}
	}
}

func timeToFloat64(t types.MillisecondTimestamp) float64 {
	return float64(t.Time().UnixNano())
}
