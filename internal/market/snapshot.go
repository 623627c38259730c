package market

import "time"

// OITier buckets open interest relative to its recent history.
type OITier string

const (
	OITierHot     OITier = "HOT"
	OITierCold    OITier = "COLD"
	OITierNeutral OITier = "NEUTRAL"
)

// EventType identifies which side of a level was tested.
type EventType string

const (
	EventSupportTest    EventType = "SUPPORT_TEST"
	EventResistanceTest EventType = "RESISTANCE_TEST"
)

// SignalEvent is the level-test alert handed to the pipeline by the
// transport layer. The pipeline reads it, never mutates it.
type SignalEvent struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"tf"`
	BarTime   int64     `json:"bar_time"`
	EventType EventType `json:"event"`
	Level     float64   `json:"level"`
	ZoneHalf  float64   `json:"zone_half"`
}

// Snapshot is the market context for exactly one decision cycle. It is
// assembled once by the gateway and treated as immutable afterwards, so
// a decision is reproducible even while live data keeps moving.
type Snapshot struct {
	Symbol string
	Price  float64

	Candles   []Candle
	Timeframe time.Duration

	ATR        float64
	VWAP       float64
	Oscillator float64

	FundingRate  float64
	OpenInterest float64
	OITier       OITier

	// ReferenceROC is the reference asset's rate-of-change series used
	// by the regime classifier.
	ReferenceROC []float64

	CapturedAt time.Time
}
