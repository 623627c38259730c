package decision

import (
	"marketlens/internal/analysis/level"
	"marketlens/internal/analysis/regime"
	"marketlens/internal/market"
)

// ScoringParams hold the fixed scoring schedule. All deltas are
// configuration, not behavior baked into the scorer.
type ScoringParams struct {
	Base               int
	StrongBonus        int
	WeakPenalty        int
	ExpansionBonus     int
	CompressionPenalty int
	OscillatorBonus    int
	HotBonus           int
	ColdPenalty        int

	// Oscillator extremes that count as counter-trend confirmation.
	Oversold   float64
	Overbought float64

	// Threshold is the minimum acceptable score; under COMPRESSION the
	// cascade entry point uses CompressionThreshold instead.
	Threshold            int
	CompressionThreshold int
}

func (p ScoringParams) withDefaults() ScoringParams {
	if p.Base == 0 {
		p.Base = 50
	}
	if p.StrongBonus == 0 {
		p.StrongBonus = 15
	}
	if p.WeakPenalty == 0 {
		p.WeakPenalty = 20
	}
	if p.ExpansionBonus == 0 {
		p.ExpansionBonus = 10
	}
	if p.CompressionPenalty == 0 {
		p.CompressionPenalty = 10
	}
	if p.OscillatorBonus == 0 {
		p.OscillatorBonus = 5
	}
	if p.HotBonus == 0 {
		p.HotBonus = 10
	}
	if p.ColdPenalty == 0 {
		p.ColdPenalty = 5
	}
	if p.Oversold == 0 {
		p.Oversold = 35
	}
	if p.Overbought == 0 {
		p.Overbought = 65
	}
	if p.Threshold == 0 {
		p.Threshold = 35
	}
	if p.CompressionThreshold == 0 {
		p.CompressionThreshold = 40
	}
	return p
}

// ScoreInput is the factor context for one candidate level.
type ScoreInput struct {
	Grade      level.Grade
	Kind       level.Kind
	Regime     regime.State
	Oscillator float64
	OITier     market.OITier
}

// Score combines the factors into a clamped 0-100 value, keeping the
// signed delta per factor for audit.
func Score(in ScoreInput, params ScoringParams) PScoreResult {
	p := params.withDefaults()
	contrib := make(map[string]int, 4)

	switch in.Grade {
	case level.GradeStrong:
		contrib["level_grade"] = p.StrongBonus
	case level.GradeWeak:
		contrib["level_grade"] = -p.WeakPenalty
	default:
		contrib["level_grade"] = 0
	}

	switch in.Regime {
	case regime.StateExpansion:
		contrib["regime"] = p.ExpansionBonus
	case regime.StateCompression:
		contrib["regime"] = -p.CompressionPenalty
	default:
		contrib["regime"] = 0
	}

	// Counter-trend confirmation: the oscillator must be extreme in the
	// direction that supports a reversal at this level type.
	contrib["oscillator"] = 0
	if in.Kind == level.KindSupport && in.Oscillator < p.Oversold {
		contrib["oscillator"] = p.OscillatorBonus
	}
	if in.Kind == level.KindResistance && in.Oscillator > p.Overbought {
		contrib["oscillator"] = p.OscillatorBonus
	}

	switch in.OITier {
	case market.OITierHot:
		contrib["sentiment"] = p.HotBonus
	case market.OITierCold:
		contrib["sentiment"] = -p.ColdPenalty
	default:
		contrib["sentiment"] = 0
	}

	value := p.Base
	for _, d := range contrib {
		value += d
	}
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	threshold := p.Threshold
	if in.Regime == regime.StateCompression {
		threshold = p.CompressionThreshold
	}
	return PScoreResult{Value: value, Contributions: contrib, ThresholdUsed: threshold}
}
