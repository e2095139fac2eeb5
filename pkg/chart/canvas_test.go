package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/wavegif/pkg/dataset"
)

func TestCanvas_Render(t *testing.T) {
	ds := dataset.Produce()

	render := func(n int) []byte {
		canvas := NewCanvas(800, 600)
		canvas.Plot(ds.WithCorrective(n))

		var buf bytes.Buffer
		require.NoError(t, canvas.Render(&buf))
		return buf.Bytes()
	}

	initial := render(0)
	img, err := png.Decode(bytes.NewReader(initial))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	assert.NotEqual(t, initial, render(2))
	assert.Equal(t, render(4), render(4))
}

func TestCanvas_PlotSkipsEmptyCorrective(t *testing.T) {
	canvas := NewCanvas(800, 600)
	canvas.Labels = false
	canvas.Plot(dataset.Produce().WithCorrective(0))
	assert.Len(t, canvas.Series, 2)

	canvas.Plot(dataset.Produce())
	assert.Len(t, canvas.Series, 3)
}

func TestCandlestickSeries_Validate(t *testing.T) {
	series := NewCandlestickSeries("empty", nil, DefaultCandleColors)
	assert.Error(t, series.Validate())

	ds := dataset.Produce()
	series = NewCandlestickSeries("price", ds.Candles, DefaultCandleColors)
	assert.NoError(t, series.Validate())
	assert.Equal(t, dataset.NumCandles, series.Len())

	_, low, high := series.GetBoundedValues(0)
	assert.Equal(t, 95.0, low)
	assert.Equal(t, 105.0, high)
}
