package market

import (
	"fmt"
	"time"
)

type Candle struct {
	OpenTime int64   `json:"open_time" yaml:"open_time"`
	Open     float64 `json:"open" yaml:"open"`
	High     float64 `json:"high" yaml:"high"`
	Low      float64 `json:"low" yaml:"low"`
	Close    float64 `json:"close" yaml:"close"`
	Volume   float64 `json:"volume" yaml:"volume"`
}

// ValidateSeries checks the ordering invariant for a fixed-timeframe
// candle sequence: open times strictly increasing, no gap wider than one
// timeframe unit. A violation means the upstream feed is broken and the
// series must not be analyzed.
func ValidateSeries(candles []Candle, timeframe time.Duration) error {
	if timeframe <= 0 {
		return fmt.Errorf("timeframe must be positive, got %s", timeframe)
	}
	step := timeframe.Milliseconds()
	for i := 1; i < len(candles); i++ {
		delta := candles[i].OpenTime - candles[i-1].OpenTime
		if delta <= 0 {
			return fmt.Errorf("candle series not strictly increasing at index %d", i)
		}
		if delta > step {
			return fmt.Errorf("candle series gap at index %d: %dms > %dms", i, delta, step)
		}
	}
	return nil
}

// Closes extracts the close series in order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
