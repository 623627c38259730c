package binance

import "time"

// Config carries everything the snapshot source needs; values map
// straight from the market section of the app config.
type Config struct {
	RESTBaseURL string
	HTTPTimeout time.Duration

	Timeframe       string
	CandleLimit     int
	ReferenceSymbol string

	ATRPeriod        int
	OscillatorPeriod int
	VWAPWindow       int
	ROCPeriod        int

	OIWindow    int
	OIHotRatio  float64
	OIColdRatio float64
}

func (c Config) withDefaults() Config {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	if c.Timeframe == "" {
		c.Timeframe = "30m"
	}
	if c.CandleLimit <= 0 {
		c.CandleLimit = 500
	}
	if c.ReferenceSymbol == "" {
		c.ReferenceSymbol = "BTC/USDT"
	}
	if c.ATRPeriod <= 0 {
		c.ATRPeriod = 14
	}
	if c.OscillatorPeriod <= 0 {
		c.OscillatorPeriod = 14
	}
	if c.VWAPWindow <= 0 {
		c.VWAPWindow = 48
	}
	if c.ROCPeriod <= 0 {
		c.ROCPeriod = 30
	}
	if c.OIWindow <= 0 {
		c.OIWindow = 48
	}
	if c.OIHotRatio <= 0 {
		c.OIHotRatio = 1.2
	}
	if c.OIColdRatio <= 0 {
		c.OIColdRatio = 0.8
	}
	return c
}
