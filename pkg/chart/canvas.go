package chart

import (
	"errors"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/c9s/wavegif/pkg/dataset"
	"github.com/c9s/wavegif/pkg/types"
)

var errNoCandles = errors.New("candlestick series must have candles")

var (
	BackgroundColor = drawing.ColorFromHex("1e1e1e")
	GridColor       = drawing.ColorFromHex("333333")
	AxisFontColor   = drawing.ColorFromHex("bbbbbb")
	PrimaryColor    = drawing.Color{R: 54, G: 162, B: 235, A: 255}
	CorrectiveColor = drawing.ColorWhite

	DefaultCandleColors = CandleColors{
		Up:        drawing.ColorFromHex("00ff00"),
		Down:      drawing.ColorFromHex("ff0000"),
		Unchanged: drawing.ColorFromHex("999999"),
	}
)

// Canvas is the chart of one dataset state: candles, the primary wave and
// the (possibly partial) corrective wave.
type Canvas struct {
	chart.Chart

	// Labels enables the wave point annotations
	Labels bool
}

func NewCanvas(width, height int) *Canvas {
	gridStyle := chart.Style{
		StrokeColor: GridColor,
		StrokeWidth: 1.0,
	}
	axisStyle := chart.Style{
		StrokeColor: GridColor,
		FontColor:   AxisFontColor,
	}

	return &Canvas{
		Chart: chart.Chart{
			Width:  width,
			Height: height,
			Background: chart.Style{
				FillColor: BackgroundColor,
			},
			Canvas: chart.Style{
				FillColor: BackgroundColor,
			},
			XAxis: chart.XAxis{
				ValueFormatter: chart.TimeDateValueFormatter,
				Style:          axisStyle,
				GridMajorStyle: gridStyle,
			},
			YAxis: chart.YAxis{
				Style:          axisStyle,
				GridMajorStyle: gridStyle,
			},
		},
		Labels: true,
	}
}

// Plot replaces the series of the canvas with the given dataset. An empty
// corrective wave is left out, the series would not validate.
func (canvas *Canvas) Plot(ds types.ChartDataset) {
	canvas.Series = []chart.Series{
		NewCandlestickSeries("Price", ds.Candles, DefaultCandleColors),
	}

	if len(ds.PrimaryWave) > 0 {
		canvas.Series = append(canvas.Series, waveSeries("Elliott Wave (1-5)", ds.PrimaryWave, chart.Style{
			StrokeColor: PrimaryColor,
			StrokeWidth: 2.0,
		}))
	}

	if len(ds.CorrectiveWave) > 0 {
		canvas.Series = append(canvas.Series, waveSeries("ABC Correction", ds.CorrectiveWave, chart.Style{
			StrokeColor:     CorrectiveColor,
			StrokeWidth:     2.0,
			StrokeDashArray: []float64{5.0, 5.0},
		}))
	}

	if canvas.Labels {
		var annotations []chart.Value2
		annotations = append(annotations, labelPoints(ds.PrimaryWave, dataset.PrimaryLabels, PrimaryColor)...)
		annotations = append(annotations, labelPoints(ds.CorrectiveWave, dataset.CorrectiveLabels, CorrectiveColor)...)
		if len(annotations) > 0 {
			canvas.Series = append(canvas.Series, chart.AnnotationSeries{
				Name:        "labels",
				Annotations: annotations,
			})
		}
	}
}

// Render writes the chart as PNG.
func (canvas *Canvas) Render(w io.Writer) error {
	return canvas.Chart.Render(chart.PNG, w)
}

func waveSeries(name string, points []types.WavePoint, style chart.Style) chart.TimeSeries {
	xs := make([]time.Time, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.Time.Time())
		ys = append(ys, p.Value)
	}

	return chart.TimeSeries{
		Name:    name,
		Style:   style,
		XValues: xs,
		YValues: ys,
	}
}

func labelPoints(points []types.WavePoint, labels []string, color drawing.Color) (out []chart.Value2) {
	for i, p := range points {
		if i >= len(labels) {
			break
		}

		out = append(out, chart.Value2{
			XValue: timeToFloat64(p.Time),
			YValue: p.Value,
			Label:  labels[i],
			Style: chart.Style{
				FillColor:   BackgroundColor,
				StrokeColor: color,
				FontColor:   color,
			},
		})
	}
	return out
}
