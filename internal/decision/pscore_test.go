package decision

import (
	"testing"

	"marketlens/internal/analysis/level"
	"marketlens/internal/analysis/regime"
	"marketlens/internal/market"

	"github.com/stretchr/testify/assert"
)

func TestScoreFactorSchedule(t *testing.T) {
	cases := []struct {
		name      string
		in        ScoreInput
		wantValue int
		wantThr   int
	}{
		{
			name: "all bullish factors",
			in: ScoreInput{
				Grade:      level.GradeStrong,
				Kind:       level.KindSupport,
				Regime:     regime.StateExpansion,
				Oscillator: 30,
				OITier:     market.OITierHot,
			},
			wantValue: 50 + 15 + 10 + 5 + 10,
			wantThr:   35,
		},
		{
			name: "all bearish factors under compression",
			in: ScoreInput{
				Grade:      level.GradeWeak,
				Kind:       level.KindSupport,
				Regime:     regime.StateCompression,
				Oscillator: 50,
				OITier:     market.OITierCold,
			},
			wantValue: 50 - 20 - 10 - 5,
			wantThr:   40,
		},
		{
			name: "neutral everything stays at base",
			in: ScoreInput{
				Grade:      level.GradeMedium,
				Kind:       level.KindSupport,
				Regime:     regime.StateNeutral,
				Oscillator: 50,
				OITier:     market.OITierNeutral,
			},
			wantValue: 50,
			wantThr:   35,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Score(tc.in, ScoringParams{})
			assert.Equal(t, tc.wantValue, res.Value)
			assert.Equal(t, tc.wantThr, res.ThresholdUsed)
		})
	}
}

func TestScoreOscillatorCounterTrendOnly(t *testing.T) {
	base := ScoreInput{
		Grade:  level.GradeMedium,
		Regime: regime.StateNeutral,
		OITier: market.OITierNeutral,
	}

	in := base
	in.Kind = level.KindSupport
	in.Oscillator = 34.9
	assert.Equal(t, 5, Score(in, ScoringParams{}).Contributions["oscillator"])

	in.Oscillator = 35
	assert.Equal(t, 0, Score(in, ScoringParams{}).Contributions["oscillator"], "boundary is exclusive")

	in.Kind = level.KindResistance
	in.Oscillator = 65.1
	assert.Equal(t, 5, Score(in, ScoringParams{}).Contributions["oscillator"])

	in.Oscillator = 65
	assert.Equal(t, 0, Score(in, ScoringParams{}).Contributions["oscillator"])

	// Extreme in the wrong direction for the level type earns nothing.
	in.Kind = level.KindSupport
	in.Oscillator = 90
	assert.Equal(t, 0, Score(in, ScoringParams{}).Contributions["oscillator"])
}

func TestScoreClamps(t *testing.T) {
	high := Score(ScoreInput{
		Grade:  level.GradeStrong,
		Kind:   level.KindSupport,
		Regime: regime.StateExpansion,
		OITier: market.OITierHot,
	}, ScoringParams{StrongBonus: 40, ExpansionBonus: 40})
	assert.Equal(t, 100, high.Value)

	low := Score(ScoreInput{
		Grade:  level.GradeWeak,
		Kind:   level.KindSupport,
		Regime: regime.StateCompression,
		OITier: market.OITierCold,
	}, ScoringParams{WeakPenalty: 60, CompressionPenalty: 30})
	assert.Equal(t, 0, low.Value)
}

func TestScoreContributionsAudit(t *testing.T) {
	res := Score(ScoreInput{
		Grade:      level.GradeStrong,
		Kind:       level.KindResistance,
		Regime:     regime.StateCompression,
		Oscillator: 70,
		OITier:     market.OITierCold,
	}, ScoringParams{})

	assert.Equal(t, map[string]int{
		"level_grade": 15,
		"regime":      -10,
		"oscillator":  5,
		"sentiment":   -5,
	}, res.Contributions)
	assert.Equal(t, 55, res.Value)
}
