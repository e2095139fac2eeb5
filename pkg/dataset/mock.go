package dataset

import (
	"time"

	"github.com/c9s/wavegif/pkg/types"
)

const (
	NumCandles          = 20
	NumPrimaryPoints    = 6
	NumCorrectivePoints = 4
)

const Day = 24 * time.Hour

// Epoch is the timestamp of the first candle and of the primary wave origin.
var Epoch = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

var (
	PrimaryLabels    = []string{"0", "1", "2", "3", "4", "5"}
	CorrectiveLabels = []string{"start", "A", "B", "C"}
)

type offsetValue struct {
	days  int
	value float64
}

var primaryWave = []offsetValue{
	{0, 100},
	{3, 120},
	{5, 110},
	{10, 150},
	{12, 135},
	{15, 160},
}

// the corrective wave starts at the top of wave 5
var correctiveWave = []offsetValue{
	{15, 160},
	{17, 140},
	{18, 150},
	{20, 130},
}

// Produce builds the synthetic dataset. It is deterministic and every call
// returns freshly allocated slices.
func Produce() types.ChartDataset {
	candles := make([]types.Candle, 0, NumCandles)
	for i := 0; i < NumCandles; i++ {
		f := float64(i)
		candles = append(candles, types.Candle{
			Time:  types.MillisecondTimestamp(Epoch.Add(time.Duration(i) * Day)),
			Open:  100 + f,
			High:  105 + f,
			Low:   95 + f,
			Close: 102 + f,
		})
	}

	return types.ChartDataset{
		Candles:        candles,
		PrimaryWave:    toPoints(primaryWave),
		CorrectiveWave: toPoints(correctiveWave),
	}
}

func toPoints(values []offsetValue) []types.WavePoint {
	points := make([]types.WavePoint, 0, len(values))
	for _, v := range values {
		points = append(points, types.NewWavePoint(Epoch.Add(time.Duration(v.days)*Day), v.value))
	}
	return points
}
