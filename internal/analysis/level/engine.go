package level

import (
	"fmt"
	"sort"

	"marketlens/internal/market"
)

// MinCandles is the smallest series the engine will analyze.
const MinCandles = 5

// Params are the fixed detection parameters. They are configuration,
// never derived at runtime, so a given series always yields the same
// level set.
type Params struct {
	// Window is the number of bars on each side of a swing pivot.
	Window int
	// MergeDistanceFactor scales ATR into the pivot merge distance.
	MergeDistanceFactor float64
	// TouchWeight and AgeWeight feed the score formula
	// touchWeight*touches - ageWeight*ageInBars.
	TouchWeight float64
	AgeWeight   float64
	// GhostThreshold removes a level from trade candidacy (but not from
	// proximity math) when its score falls below it.
	GhostThreshold float64
}

func (p Params) withDefaults() Params {
	if p.Window <= 0 {
		p.Window = 4
	}
	if p.MergeDistanceFactor <= 0 {
		p.MergeDistanceFactor = 0.6
	}
	if p.TouchWeight == 0 {
		p.TouchWeight = 1.0
	}
	if p.AgeWeight == 0 {
		p.AgeWeight = 0.15
	}
	if p.GhostThreshold == 0 {
		p.GhostThreshold = -10.0
	}
	return p
}

// Engine detects, merges and scores support/resistance levels.
type Engine struct {
	params Params
}

func NewEngine(params Params) *Engine {
	return &Engine{params: params.withDefaults()}
}

type pivot struct {
	idx   int
	price float64
	kind  Kind
}

type mergedLevel struct {
	priceSum float64
	kind     Kind
	touches  int
	firstIdx int
}

// Detect returns the full scored level set for the series, ghost levels
// included. Use Actionable to narrow to trade candidates.
//
// Merging walks pivots chronologically, breaking same-bar ties by price
// ascending, so the result is identical on every run for fixed inputs.
func (e *Engine) Detect(candles []market.Candle, atr float64) ([]Level, error) {
	if len(candles) < MinCandles {
		return nil, fmt.Errorf("level engine: need at least %d candles, got %d", MinCandles, len(candles))
	}
	if atr <= 0 {
		return nil, fmt.Errorf("level engine: atr must be positive, got %v", atr)
	}

	pivots := e.findPivots(candles)
	mergeDist := e.params.MergeDistanceFactor * atr

	var merged []*mergedLevel
	for _, p := range pivots {
		var target *mergedLevel
		for _, m := range merged {
			if m.kind != p.kind {
				continue
			}
			if absDiff(m.price(), p.price) < mergeDist {
				target = m
				break
			}
		}
		if target == nil {
			merged = append(merged, &mergedLevel{priceSum: p.price, kind: p.kind, touches: 1, firstIdx: p.idx})
			continue
		}
		target.priceSum += p.price
		target.touches++
		if p.idx < target.firstIdx {
			target.firstIdx = p.idx
		}
	}

	lastIdx := len(candles) - 1
	out := make([]Level, 0, len(merged))
	for _, m := range merged {
		age := lastIdx - m.firstIdx
		out = append(out, Level{
			Price:     m.price(),
			Kind:      m.kind,
			Touches:   m.touches,
			AgeInBars: age,
			Score:     e.params.TouchWeight*float64(m.touches) - e.params.AgeWeight*float64(age),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Kind < out[j].Kind
	})
	return out, nil
}

// MergeDistance is the price tolerance used both for pivot merging and
// for matching an external level price onto the detected set.
func (e *Engine) MergeDistance(atr float64) float64 {
	return e.params.MergeDistanceFactor * atr
}

// Actionable filters out ghost levels (score below the configured
// threshold). Ghosts stay available in the Detect output for distance
// checks; they just cannot be traded.
func (e *Engine) Actionable(levels []Level) []Level {
	out := make([]Level, 0, len(levels))
	for _, l := range levels {
		if l.Score >= e.params.GhostThreshold {
			out = append(out, l)
		}
	}
	return out
}

func (m *mergedLevel) price() float64 {
	return m.priceSum / float64(m.touches)
}

// findPivots scans for symmetric-window swing highs and lows in bar
// order. A bar producing both pivots emits the low first (price
// ascending tie-break).
func (e *Engine) findPivots(candles []market.Candle) []pivot {
	w := e.params.Window
	var pivots []pivot
	for i := w; i < len(candles)-w; i++ {
		isHigh, isLow := true, true
		for j := 1; j <= w; j++ {
			if candles[i].High < candles[i-j].High || candles[i].High < candles[i+j].High {
				isHigh = false
			}
			if candles[i].Low > candles[i-j].Low || candles[i].Low > candles[i+j].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		// Low before high on a double pivot: price-ascending tie-break.
		if isLow {
			pivots = append(pivots, pivot{idx: i, price: candles[i].Low, kind: KindSupport})
		}
		if isHigh {
			pivots = append(pivots, pivot{idx: i, price: candles[i].High, kind: KindResistance})
		}
	}
	return pivots
}
