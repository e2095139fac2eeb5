package types

import "time"

// Candle is one OHLC price bar. The json tags follow the financial chart
// plugin's data format.
type Candle struct {
	Time  MillisecondTimestamp `json:"x" yaml:"time"`
	Open  float64              `json:"o" yaml:"open"`
	High  float64              `json:"h" yaml:"high"`
	Low   float64              `json:"l" yaml:"low"`
	Close float64              `json:"c" yaml:"close"`
}

func (c Candle) Direction() Direction {
	switch {
	case c.Close > c.Open:
		return DirectionUp
	case c.Close < c.Open:
		return DirectionDown
	}
	return DirectionNone
}

type Direction int

const (
	DirectionUp   Direction = 1
	DirectionNone Direction = 0
	DirectionDown Direction = -1
)

// WavePoint is a vertex of a wave polyline overlay.
type WavePoint struct {
	Time  MillisecondTimestamp `json:"x" yaml:"time"`
	Value float64              `json:"y" yaml:"value"`
}

func NewWavePoint(t time.Time, v float64) WavePoint {
	return WavePoint{Time: MillisecondTimestamp(t), Value: v}
}

// ChartDataset is the full payload injected into a render surface.
type ChartDataset struct {
	Candles        []Candle    `json:"candles" yaml:"candles"`
	PrimaryWave    []WavePoint `json:"primaryWave" yaml:"primaryWave"`
	CorrectiveWave []WavePoint `json:"correctiveWave" yaml:"correctiveWave"`
}

// WithCorrective returns a copy of the dataset with the corrective wave
// truncated to its first n points. The slices of the copy never alias the
// receiver's slices.
func (d ChartDataset) WithCorrective(n int) ChartDataset {
	if n < 0 {
		n = 0
	} else if n > len(d.CorrectiveWave) {
		n = len(d.CorrectiveWave)
	}

	return ChartDataset{
		Candles:        append([]Candle{}, d.Candles...),
		PrimaryWave:    append([]WavePoint{}, d.PrimaryWave...),
		CorrectiveWave: append([]WavePoint{}, d.CorrectiveWave[:n]...),
	}
}

// CorrectivePrefix returns a copy of the first n corrective wave points.
func (d ChartDataset) CorrectivePrefix(n int) []WavePoint {
	return d.WithCorrective(n).CorrectiveWave
}
