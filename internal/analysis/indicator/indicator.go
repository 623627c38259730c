package indicator

import (
	"fmt"

	"marketlens/internal/market"

	talib "github.com/markcheno/go-talib"
)

// ATR returns the latest Average True Range over the given period.
func ATR(candles []market.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("atr: period must be positive")
	}
	if len(candles) <= period {
		return 0, fmt.Errorf("atr: need more than %d candles, got %d", period, len(candles))
	}
	high := make([]float64, len(candles))
	low := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	for i, c := range candles {
		high[i] = c.High
		low[i] = c.Low
		closes[i] = c.Close
	}
	series := talib.Atr(high, low, closes, period)
	if len(series) == 0 {
		return 0, fmt.Errorf("atr: talib output empty")
	}
	return series[len(series)-1], nil
}

// RSI returns the latest Wilder RSI over the given period.
func RSI(candles []market.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("rsi: period must be positive")
	}
	if len(candles) <= period {
		return 0, fmt.Errorf("rsi: need more than %d candles, got %d", period, len(candles))
	}
	series := talib.Rsi(market.Closes(candles), period)
	if len(series) == 0 {
		return 0, fmt.Errorf("rsi: talib output empty")
	}
	return series[len(series)-1], nil
}

// ROC returns the full rate-of-change series for the given period.
// Leading positions without enough history are dropped.
func ROC(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("roc: period must be positive")
	}
	if len(closes) <= period {
		return nil, fmt.Errorf("roc: need more than %d closes, got %d", period, len(closes))
	}
	series := talib.Roc(closes, period)
	if len(series) <= period {
		return nil, fmt.Errorf("roc: talib output too short")
	}
	return series[period:], nil
}

// VWAP computes the volume-weighted average price over the trailing
// window of candles (the whole series when it is shorter).
func VWAP(candles []market.Candle, window int) (float64, error) {
	if len(candles) == 0 {
		return 0, fmt.Errorf("vwap: empty candle series")
	}
	if window <= 0 || window > len(candles) {
		window = len(candles)
	}
	tail := candles[len(candles)-window:]
	var pv, vol float64
	for _, c := range tail {
		pv += c.Close * c.Volume
		vol += c.Volume
	}
	if vol == 0 {
		return 0, fmt.Errorf("vwap: zero volume in window")
	}
	return pv / vol, nil
}
