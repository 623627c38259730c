package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func series(times ...int64) []Candle {
	candles := make([]Candle, len(times))
	for i, ts := range times {
		candles[i] = Candle{OpenTime: ts, Close: 100}
	}
	return candles
}

func TestValidateSeries(t *testing.T) {
	tf := 30 * time.Minute
	step := tf.Milliseconds()

	assert.NoError(t, ValidateSeries(series(0, step, 2*step, 3*step), tf))
	assert.NoError(t, ValidateSeries(series(0), tf), "a single candle has no ordering to violate")
	assert.NoError(t, ValidateSeries(nil, tf))

	err := ValidateSeries(series(0, step, step), tf)
	assert.ErrorContains(t, err, "not strictly increasing")

	err = ValidateSeries(series(0, step, 3*step), tf)
	assert.ErrorContains(t, err, "gap at index 2")

	assert.Error(t, ValidateSeries(series(0, step), 0))
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 1.5}, {Close: 2.5}}
	assert.Equal(t, []float64{1.5, 2.5}, Closes(candles))
	assert.Empty(t, Closes(nil))
}
