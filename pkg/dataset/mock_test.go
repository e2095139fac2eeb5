package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProduce(t *testing.T) {
	ds := Produce()

	assert.Len(t, ds.Candles, NumCandles)
	assert.Len(t, ds.PrimaryWave, NumPrimaryPoints)
	assert.Len(t, ds.CorrectiveWave, NumCorrectivePoints)
	assert.Len(t, PrimaryLabels, NumPrimaryPoints)
	assert.Len(t, CorrectiveLabels, NumCorrectivePoints)

	for i, c := range ds.Candles {
		f := float64(i)
		assert.Equal(t, Epoch.Add(time.Duration(i)*Day), c.Time.Time())
		assert.Equal(t, 100+f, c.Open)
		assert.Equal(t, 105+f, c.High)
		assert.Equal(t, 95+f, c.Low)
		assert.Equal(t, 102+f, c.Close)
	}

	const day = int64(86400000)
	base := Epoch.UnixMilli()
	assert.Equal(t, int64(1672531200000), base)

	expectedPrimary := [][2]float64{{0, 100}, {3, 120}, {5, 110}, {10, 150}, {12, 135}, {15, 160}}
	for i, p := range ds.PrimaryWave {
		assert.Equal(t, base+int64(expectedPrimary[i][0])*day, p.Time.Unix(), "primary point %d", i)
		assert.Equal(t, expectedPrimary[i][1], p.Value, "primary point %d", i)
	}

	expectedCorrective := [][2]float64{{15, 160}, {17, 140}, {18, 150}, {20, 130}}
	for i, p := range ds.CorrectiveWave {
		assert.Equal(t, base+int64(expectedCorrective[i][0])*day, p.Time.Unix(), "corrective point %d", i)
		assert.Equal(t, expectedCorrective[i][1], p.Value, "corrective point %d", i)
	}

	// the corrective wave starts where wave 5 ends
	assert.Equal(t, ds.PrimaryWave[5], ds.CorrectiveWave[0])
}

func TestProduce_Deterministic(t *testing.T) {
	a := Produce()
	b := Produce()
	assert.Equal(t, a, b)

	a.Candles[0].Open = 0
	assert.Equal(t, 100.0, b.Candles[0].Open)
}
