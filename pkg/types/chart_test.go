package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartDataset_WithCorrective(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := ChartDataset{
		CorrectiveWave: []WavePoint{
			NewWavePoint(base, 160),
			NewWavePoint(base.Add(24*time.Hour), 140),
			NewWavePoint(base.Add(48*time.Hour), 150),
		},
	}

	assert.Len(t, ds.WithCorrective(0).CorrectiveWave, 0)
	assert.Len(t, ds.WithCorrective(2).CorrectiveWave, 2)
	assert.Len(t, ds.WithCorrective(10).CorrectiveWave, 3)
	assert.Len(t, ds.WithCorrective(-1).CorrectiveWave, 0)

	prefix := ds.CorrectivePrefix(2)
	prefix[0].Value = 1
	assert.Equal(t, 160.0, ds.CorrectiveWave[0].Value, "prefix must not alias the dataset")
}

func TestCandle_JSON(t *testing.T) {
	c := Candle{
		Time:  NewMillisecondTimestampFromInt(1672531200000),
		Open:  100,
		High:  105,
		Low:   95,
		Close: 102,
	}

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1672531200000,"o":100,"h":105,"l":95,"c":102}`, string(out))

	var c2 Candle
	require.NoError(t, json.Unmarshal(out, &c2))
	assert.Equal(t, c.Time.Unix(), c2.Time.Unix())
	assert.Equal(t, DirectionUp, c2.Direction())
}

func TestCandle_Direction(t *testing.T) {
	assert.Equal(t, DirectionUp, Candle{Open: 100, Close: 102}.Direction())
	assert.Equal(t, DirectionDown, Candle{Open: 102, Close: 100}.Direction())
	assert.Equal(t, DirectionNone, Candle{Open: 100, Close: 100}.Direction())
	assert.IsType(t, Direction(0), DirectionUp)
}
