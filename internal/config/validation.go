package config

import (
	"fmt"
	"time"
)

func validate(c *Config) error {
	if _, err := time.ParseDuration(c.Market.Timeframe); err != nil {
		return &ConfigurationError{Field: "market.timeframe", Reason: fmt.Sprintf("unparseable duration %q", c.Market.Timeframe)}
	}
	if c.Market.CandleLimit < 5 {
		return &ConfigurationError{Field: "market.candle_limit", Reason: "must be at least 5"}
	}
	if c.Market.OIColdRatio >= c.Market.OIHotRatio {
		return &ConfigurationError{Field: "market.oi_cold_ratio", Reason: "must be below oi_hot_ratio"}
	}
	if c.Levels.Window < 1 {
		return &ConfigurationError{Field: "levels.window", Reason: "must be at least 1"}
	}
	if c.Levels.GhostThreshold >= 0 {
		return &ConfigurationError{Field: "levels.ghost_threshold", Reason: "must be negative"}
	}
	if c.Regime.MinSamples > c.Regime.Window {
		return &ConfigurationError{Field: "regime.min_samples", Reason: "cannot exceed regime.window"}
	}
	if c.Scoring.Threshold > c.Scoring.CompressionThreshold {
		return &ConfigurationError{Field: "scoring.threshold", Reason: "cannot exceed compression_threshold"}
	}
	if c.Kevlar.MaxLevelDistance >= 1 {
		return &ConfigurationError{Field: "kevlar.max_level_distance", Reason: "is a fraction of price, must be below 1"}
	}
	if c.Trading.Capital <= 0 {
		return &ConfigurationError{Field: "trading.capital", Reason: "must be positive"}
	}
	if c.Trading.RiskFraction <= 0 || c.Trading.RiskFraction > 0.5 {
		return &ConfigurationError{Field: "trading.risk_fraction", Reason: "must be in (0, 0.5]"}
	}
	if c.Trading.MinRRR < 1 {
		return &ConfigurationError{Field: "trading.min_rrr", Reason: "must be at least 1"}
	}
	if c.Trading.FundingMinRRR < c.Trading.MinRRR {
		return &ConfigurationError{Field: "trading.funding_min_rrr", Reason: "cannot be below min_rrr"}
	}
	if c.Trading.LotStep < 0 {
		return &ConfigurationError{Field: "trading.lot_step", Reason: "cannot be negative"}
	}
	return nil
}
