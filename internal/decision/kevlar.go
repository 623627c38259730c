package decision

import (
	"fmt"

	"marketlens/internal/analysis/level"
	"marketlens/internal/market"
)

// Cascade gate identifiers, in evaluation order.
const (
	GatePScoreThreshold = "p_score_threshold"
	GateDataIntegrity   = "data_integrity"
	GateLevelDistance   = "level_distance"
	GateFallingKnife    = "falling_knife"
	GateShortSqueeze    = "short_squeeze"
	GateOscExtreme      = "oscillator_extreme"
	GateSentimentTrap   = "sentiment_trap"
	GateAntiTrap        = "anti_trap"
)

// CascadeParams hold every cascade threshold as fixed configuration.
type CascadeParams struct {
	MinCandles int
	// MaxLevelDistance is fractional (0.15 = 15% of current price).
	MaxLevelDistance float64
	// MomentumBars and MomentumLimit parameterize the falling-knife /
	// short-squeeze lookback: close[now]/close[now-bars] - 1.
	MomentumBars  int
	MomentumLimit float64
	// PanicFloor / FomoCeiling are the oscillator extremes; extreme
	// readings block only when the score is below PanicScoreFloor.
	PanicFloor      float64
	FomoCeiling     float64
	PanicScoreFloor int
	// FundingTrap is the fractional funding rate beyond which a
	// VWAP-contradicted crowd marks a trap (0.0003 = 0.03%).
	FundingTrap float64
	// AntiTrapDistance is the fractional proximity to an opposing
	// STRONG level that blocks a chosen direction (0.003 = 0.3%).
	AntiTrapDistance float64
}

func (p CascadeParams) withDefaults() CascadeParams {
	if p.MinCandles <= 0 {
		p.MinCandles = 5
	}
	if p.MaxLevelDistance == 0 {
		p.MaxLevelDistance = 0.15
	}
	if p.MomentumBars <= 0 {
		p.MomentumBars = 5
	}
	if p.MomentumLimit == 0 {
		p.MomentumLimit = 0.05
	}
	if p.PanicFloor == 0 {
		p.PanicFloor = 20
	}
	if p.FomoCeiling == 0 {
		p.FomoCeiling = 80
	}
	if p.PanicScoreFloor == 0 {
		p.PanicScoreFloor = 50
	}
	if p.FundingTrap == 0 {
		p.FundingTrap = 0.0003
	}
	if p.AntiTrapDistance == 0 {
		p.AntiTrapDistance = 0.003
	}
	return p
}

// CascadeInput is everything the gates may consume. The snapshot is
// read-only for the whole cascade run.
type CascadeInput struct {
	Side     Side
	Level    level.Level
	PScore   PScoreResult
	Snapshot *market.Snapshot
}

type gateFunc func(in CascadeInput, p CascadeParams) (bool, string)

type gate struct {
	name string
	eval gateFunc
}

// cascadeGates is the fixed gate order. The threshold soft-gate runs as
// the cascade entry stage, never bypassed.
var cascadeGates = []gate{
	{GatePScoreThreshold, gateThreshold},
	{GateDataIntegrity, gateDataIntegrity},
	{GateLevelDistance, gateLevelDistance},
	{GateFallingKnife, gateFallingKnife},
	{GateShortSqueeze, gateShortSqueeze},
	{GateOscExtreme, gateOscExtreme},
	{GateSentimentTrap, gateSentimentTrap},
}

// RunCascade evaluates the gates in order and stops at the first
// failure. Gates that never ran are absent from the verdict.
func RunCascade(in CascadeInput, params CascadeParams) KevlarVerdict {
	p := params.withDefaults()
	verdict := KevlarVerdict{Passed: true}
	for _, g := range cascadeGates {
		passed, detail := g.eval(in, p)
		verdict.Results = append(verdict.Results, GateResult{Gate: g.name, Passed: passed, Detail: detail})
		if !passed {
			verdict.Passed = false
			verdict.FirstFailingGate = g.name
			break
		}
	}
	return verdict
}

func gateThreshold(in CascadeInput, _ CascadeParams) (bool, string) {
	detail := fmt.Sprintf("p_score=%d threshold=%d", in.PScore.Value, in.PScore.ThresholdUsed)
	return in.PScore.Value >= in.PScore.ThresholdUsed, detail
}

func gateDataIntegrity(in CascadeInput, p CascadeParams) (bool, string) {
	s := in.Snapshot
	if s == nil {
		return false, "snapshot missing"
	}
	detail := fmt.Sprintf("atr=%v price=%v candles=%d", s.ATR, s.Price, len(s.Candles))
	if s.ATR == 0 || s.Price == 0 || len(s.Candles) < p.MinCandles {
		return false, detail
	}
	return true, detail
}

func gateLevelDistance(in CascadeInput, p CascadeParams) (bool, string) {
	price := in.Snapshot.Price
	if price <= 0 {
		return false, "price missing"
	}
	dist := absFloat(price-in.Level.Price) / price
	detail := fmt.Sprintf("price=%v level=%v dist=%.4f max=%.4f", price, in.Level.Price, dist, p.MaxLevelDistance)
	return dist <= p.MaxLevelDistance, detail
}

// momentumChange returns close[now]/close[now-bars] - 1, failing closed
// when the series is too short to look back.
func momentumChange(s *market.Snapshot, bars int) (float64, error) {
	if len(s.Candles) <= bars {
		return 0, fmt.Errorf("need %d candles for momentum lookback, got %d", bars+1, len(s.Candles))
	}
	ref := s.Candles[len(s.Candles)-1-bars].Close
	if ref == 0 {
		return 0, fmt.Errorf("zero reference close %d bars back", bars)
	}
	return s.Candles[len(s.Candles)-1].Close/ref - 1, nil
}

func gateFallingKnife(in CascadeInput, p CascadeParams) (bool, string) {
	if in.Level.Kind != level.KindSupport {
		return true, "resistance level, not applicable"
	}
	chg, err := momentumChange(in.Snapshot, p.MomentumBars)
	if err != nil {
		return false, err.Error()
	}
	detail := fmt.Sprintf("change_%dbar=%.4f limit=-%.4f", p.MomentumBars, chg, p.MomentumLimit)
	return chg >= -p.MomentumLimit, detail
}

func gateShortSqueeze(in CascadeInput, p CascadeParams) (bool, string) {
	if in.Level.Kind != level.KindResistance {
		return true, "support level, not applicable"
	}
	chg, err := momentumChange(in.Snapshot, p.MomentumBars)
	if err != nil {
		return false, err.Error()
	}
	detail := fmt.Sprintf("change_%dbar=%.4f limit=+%.4f", p.MomentumBars, chg, p.MomentumLimit)
	return chg <= p.MomentumLimit, detail
}

func gateOscExtreme(in CascadeInput, p CascadeParams) (bool, string) {
	osc := in.Snapshot.Oscillator
	detail := fmt.Sprintf("oscillator=%.1f p_score=%d", osc, in.PScore.Value)
	extreme := osc < p.PanicFloor || osc > p.FomoCeiling
	if extreme && in.PScore.Value < p.PanicScoreFloor {
		return false, detail
	}
	return true, detail
}

func gateSentimentTrap(in CascadeInput, p CascadeParams) (bool, string) {
	s := in.Snapshot
	if s.VWAP == 0 {
		return false, "vwap missing"
	}
	detail := fmt.Sprintf("funding=%.5f price=%v vwap=%v side=%s", s.FundingRate, s.Price, s.VWAP, in.Side)
	if in.Side == SideLong && s.FundingRate > p.FundingTrap && s.Price < s.VWAP {
		return false, detail
	}
	if in.Side == SideShort && s.FundingRate < -p.FundingTrap && s.Price > s.VWAP {
		return false, detail
	}
	return true, detail
}

// AntiTrap is the post-direction check: a LONG hugging a STRONG
// resistance (or a SHORT hugging a STRONG support) is blocked before
// order construction.
func AntiTrap(side Side, entry float64, levels []level.Level, params CascadeParams) GateResult {
	p := params.withDefaults()
	opposing := level.KindResistance
	if side == SideShort {
		opposing = level.KindSupport
	}
	if entry <= 0 {
		return GateResult{Gate: GateAntiTrap, Passed: false, Detail: "entry price missing"}
	}
	if trap, ok := level.StrongWithin(levels, opposing, entry, p.AntiTrapDistance); ok {
		return GateResult{
			Gate:   GateAntiTrap,
			Passed: false,
			Detail: fmt.Sprintf("%s within %.2f%% of STRONG %s @ %v", side, p.AntiTrapDistance*100, opposing, trap.Price),
		}
	}
	return GateResult{Gate: GateAntiTrap, Passed: true, Detail: fmt.Sprintf("no STRONG %s within %.2f%% of %v", opposing, p.AntiTrapDistance*100, entry)}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
