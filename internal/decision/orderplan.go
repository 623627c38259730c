package decision

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Order sanity gate identifiers.
const (
	GateStopDistance = "stop_distance_zero"
	GatePositionSize = "position_size_zero"
	GateMinRRR       = "rrr_below_min"
	GateFundingRRR   = "funding_rrr"
)

// OrderParams are the fixed ATR multiples and sanity thresholds.
type OrderParams struct {
	StopATR float64
	TP1ATR  float64
	TP2ATR  float64
	TP3ATR  float64

	MinRRR float64
	// FundingCap with FundingMinRRR: overheated funding demands a
	// better reward (funding > cap and RRR < min blocks).
	FundingCap    float64
	FundingMinRRR float64
	// LotStep floors the position size to an exchange step; zero
	// disables rounding.
	LotStep float64
}

func (p OrderParams) withDefaults() OrderParams {
	if p.StopATR == 0 {
		p.StopATR = 1.0
	}
	if p.TP1ATR == 0 {
		p.TP1ATR = 0.75
	}
	if p.TP2ATR == 0 {
		p.TP2ATR = 1.25
	}
	if p.TP3ATR == 0 {
		p.TP3ATR = 2.0
	}
	if p.MinRRR == 0 {
		p.MinRRR = 1.10
	}
	if p.FundingCap == 0 {
		p.FundingCap = 0.005
	}
	if p.FundingMinRRR == 0 {
		p.FundingMinRRR = 1.30
	}
	return p
}

// OrderInput feeds the plan calculation. Entry is always the level
// price: limit order semantics, never the market price.
type OrderInput struct {
	Side         Side
	Level        float64
	ATR          float64
	Capital      float64
	RiskFraction float64
	FundingRate  float64
}

// BuildPlan maps the input to a complete plan or a *GateFailure. The
// math runs on exact decimals so identical inputs always produce
// identical plans. A blocked calculation returns no partial plan.
func BuildPlan(in OrderInput, params OrderParams) (*OrderPlan, error) {
	p := params.withDefaults()

	entry := decimal.NewFromFloat(in.Level)
	atr := decimal.NewFromFloat(in.ATR)
	stopOff := atr.Mul(decimal.NewFromFloat(p.StopATR))
	tp1Off := atr.Mul(decimal.NewFromFloat(p.TP1ATR))
	tp2Off := atr.Mul(decimal.NewFromFloat(p.TP2ATR))
	tp3Off := atr.Mul(decimal.NewFromFloat(p.TP3ATR))

	var stop, tp1, tp2, tp3 decimal.Decimal
	switch in.Side {
	case SideLong:
		stop = entry.Sub(stopOff)
		tp1 = entry.Add(tp1Off)
		tp2 = entry.Add(tp2Off)
		tp3 = entry.Add(tp3Off)
	case SideShort:
		stop = entry.Add(stopOff)
		tp1 = entry.Sub(tp1Off)
		tp2 = entry.Sub(tp2Off)
		tp3 = entry.Sub(tp3Off)
	default:
		return nil, &GateFailure{Gate: GateStopDistance, Detail: fmt.Sprintf("unknown side %q", in.Side)}
	}

	stopDist := entry.Sub(stop).Abs()
	if stopDist.IsZero() {
		return nil, &GateFailure{Gate: GateStopDistance, Detail: "entry equals stop"}
	}

	riskAmount := decimal.NewFromFloat(in.Capital).Mul(decimal.NewFromFloat(in.RiskFraction))
	size := riskAmount.Div(stopDist)
	if p.LotStep > 0 {
		step := decimal.NewFromFloat(p.LotStep)
		size = size.Div(step).Floor().Mul(step)
	}
	if !size.IsPositive() {
		return nil, &GateFailure{Gate: GatePositionSize, Detail: fmt.Sprintf("size %s with capital %v risk %v", size, in.Capital, in.RiskFraction)}
	}

	rrr := tp2.Sub(entry).Abs().Div(stopDist)
	minRRR := decimal.NewFromFloat(p.MinRRR)
	if rrr.LessThan(minRRR) {
		return nil, &GateFailure{Gate: GateMinRRR, Detail: fmt.Sprintf("rrr %s < min %v", rrr.StringFixed(4), p.MinRRR)}
	}
	if in.FundingRate > p.FundingCap && rrr.LessThan(decimal.NewFromFloat(p.FundingMinRRR)) {
		return nil, &GateFailure{Gate: GateFundingRRR, Detail: fmt.Sprintf("funding %v > %v and rrr %s < %v", in.FundingRate, p.FundingCap, rrr.StringFixed(4), p.FundingMinRRR)}
	}

	return &OrderPlan{
		Side:         in.Side,
		Entry:        toFloat(entry),
		StopLoss:     toFloat(stop),
		TP1:          toFloat(tp1),
		TP2:          toFloat(tp2),
		TP3:          toFloat(tp3),
		PositionSize: toFloat(size),
		RiskAmount:   toFloat(riskAmount),
		RRR:          toFloat(rrr),
	}, nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
