package config

// applyDefaults fills every unset field with the documented default.
// The scoring deltas mirror the fixed schedule: base 50, level grade
// +15/-20, regime +10/-10, oscillator +5, sentiment +10/-5.
func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Market.Timeframe == "" {
		c.Market.Timeframe = "30m"
	}
	if c.Market.HTTPTimeoutSeconds <= 0 {
		c.Market.HTTPTimeoutSeconds = 10
	}
	if c.Market.CandleLimit <= 0 {
		c.Market.CandleLimit = 500
	}
	if c.Market.ReferenceSymbol == "" {
		c.Market.ReferenceSymbol = "BTC/USDT"
	}
	if c.Market.ATRPeriod <= 0 {
		c.Market.ATRPeriod = 14
	}
	if c.Market.OscillatorPeriod <= 0 {
		c.Market.OscillatorPeriod = 14
	}
	if c.Market.VWAPWindow <= 0 {
		c.Market.VWAPWindow = 48
	}
	if c.Market.ROCPeriod <= 0 {
		c.Market.ROCPeriod = 30
	}
	if c.Market.OIWindow <= 0 {
		c.Market.OIWindow = 48
	}
	if c.Market.OIHotRatio <= 0 {
		c.Market.OIHotRatio = 1.2
	}
	if c.Market.OIColdRatio <= 0 {
		c.Market.OIColdRatio = 0.8
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/marketlens.db"
	}

	if c.Levels.Window <= 0 {
		c.Levels.Window = 4
	}
	if c.Levels.MergeATR <= 0 {
		c.Levels.MergeATR = 0.6
	}
	if c.Levels.TouchWeight == 0 {
		c.Levels.TouchWeight = 1.0
	}
	if c.Levels.AgeWeight == 0 {
		c.Levels.AgeWeight = 0.15
	}
	if c.Levels.GhostThreshold == 0 {
		c.Levels.GhostThreshold = -10.0
	}

	if c.Regime.Window <= 0 {
		c.Regime.Window = 180
	}
	if c.Regime.MinSamples <= 0 {
		c.Regime.MinSamples = c.Regime.Window
	}
	if c.Regime.ZThreshold <= 0 {
		c.Regime.ZThreshold = 1.25
	}

	if c.Scoring.Base == 0 {
		c.Scoring.Base = 50
	}
	if c.Scoring.StrongBonus == 0 {
		c.Scoring.StrongBonus = 15
	}
	if c.Scoring.WeakPenalty == 0 {
		c.Scoring.WeakPenalty = 20
	}
	if c.Scoring.ExpansionBonus == 0 {
		c.Scoring.ExpansionBonus = 10
	}
	if c.Scoring.CompressionPenalty == 0 {
		c.Scoring.CompressionPenalty = 10
	}
	if c.Scoring.OscillatorBonus == 0 {
		c.Scoring.OscillatorBonus = 5
	}
	if c.Scoring.HotBonus == 0 {
		c.Scoring.HotBonus = 10
	}
	if c.Scoring.ColdPenalty == 0 {
		c.Scoring.ColdPenalty = 5
	}
	if c.Scoring.Oversold <= 0 {
		c.Scoring.Oversold = 35
	}
	if c.Scoring.Overbought <= 0 {
		c.Scoring.Overbought = 65
	}
	if c.Scoring.Threshold <= 0 {
		c.Scoring.Threshold = 35
	}
	if c.Scoring.CompressionThreshold <= 0 {
		c.Scoring.CompressionThreshold = 40
	}

	if c.Kevlar.MaxLevelDistance <= 0 {
		c.Kevlar.MaxLevelDistance = 0.15
	}
	if c.Kevlar.MomentumBars <= 0 {
		c.Kevlar.MomentumBars = 5
	}
	if c.Kevlar.MomentumLimit <= 0 {
		c.Kevlar.MomentumLimit = 0.05
	}
	if c.Kevlar.PanicFloor <= 0 {
		c.Kevlar.PanicFloor = 20
	}
	if c.Kevlar.FomoCeiling <= 0 {
		c.Kevlar.FomoCeiling = 80
	}
	if c.Kevlar.PanicScoreFloor <= 0 {
		c.Kevlar.PanicScoreFloor = 50
	}
	if c.Kevlar.FundingTrap <= 0 {
		c.Kevlar.FundingTrap = 0.0003
	}
	if c.Kevlar.AntiTrapDistance <= 0 {
		c.Kevlar.AntiTrapDistance = 0.003
	}

	if c.Trading.Capital <= 0 {
		c.Trading.Capital = 1000
	}
	if c.Trading.RiskFraction <= 0 {
		c.Trading.RiskFraction = 0.01
	}
	if c.Trading.StopATR <= 0 {
		c.Trading.StopATR = 1.0
	}
	if c.Trading.TP1ATR <= 0 {
		c.Trading.TP1ATR = 0.75
	}
	if c.Trading.TP2ATR <= 0 {
		c.Trading.TP2ATR = 1.25
	}
	if c.Trading.TP3ATR <= 0 {
		c.Trading.TP3ATR = 2.0
	}
	if c.Trading.MinRRR <= 0 {
		c.Trading.MinRRR = 1.10
	}
	if c.Trading.FundingCap <= 0 {
		c.Trading.FundingCap = 0.005
	}
	if c.Trading.FundingMinRRR <= 0 {
		c.Trading.FundingMinRRR = 1.30
	}
}
