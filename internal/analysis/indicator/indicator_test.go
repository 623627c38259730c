package indicator

import (
	"testing"

	"marketlens/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantCandles(n int, price, volume float64) []market.Candle {
	candles := make([]market.Candle, n)
	for i := range candles {
		candles[i] = market.Candle{
			OpenTime: int64(i) * 1_800_000,
			Open:     price,
			High:     price + 2,
			Low:      price - 2,
			Close:    price,
			Volume:   volume,
		}
	}
	return candles
}

func TestATRConstantRange(t *testing.T) {
	// A fixed 4-point high/low range converges to a true range of 4.
	atr, err := ATR(constantCandles(100, 100, 1), 14)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, atr, 1e-6)
}

func TestATRInputErrors(t *testing.T) {
	_, err := ATR(constantCandles(10, 100, 1), 14)
	assert.ErrorContains(t, err, "need more than 14 candles")

	_, err = ATR(constantCandles(30, 100, 1), 0)
	assert.ErrorContains(t, err, "period must be positive")
}

func TestRSIBounds(t *testing.T) {
	candles := constantCandles(60, 100, 1)
	// Strictly rising closes pin RSI to the top of the scale.
	for i := range candles {
		candles[i].Close = 100 + float64(i)
	}
	rsi, err := RSI(candles, 14)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, rsi, 1e-6)

	for i := range candles {
		candles[i].Close = 200 - float64(i)
	}
	rsi, err = RSI(candles, 14)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 1e-6)
}

func TestROCDropsWarmup(t *testing.T) {
	closes := []float64{100, 102, 104, 106, 108, 110}
	roc, err := ROC(closes, 2)
	require.NoError(t, err)
	require.Len(t, roc, 4)
	assert.InDelta(t, 4.0, roc[0], 1e-9, "104 vs 100 is +4%")

	_, err = ROC(closes[:2], 2)
	assert.Error(t, err)
}

func TestVWAP(t *testing.T) {
	candles := []market.Candle{
		{Close: 100, Volume: 1},
		{Close: 200, Volume: 3},
	}
	v, err := VWAP(candles, 0)
	require.NoError(t, err)
	assert.InDelta(t, 175.0, v, 1e-9)

	// Trailing window excludes the old bar entirely.
	v, err = VWAP(candles, 1)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, v, 1e-9)

	_, err = VWAP(nil, 5)
	assert.Error(t, err)

	_, err = VWAP(constantCandles(5, 100, 0), 5)
	assert.ErrorContains(t, err, "zero volume")
}
