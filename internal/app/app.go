package app

import (
	"context"
	"time"

	"marketlens/internal/analysis/level"
	"marketlens/internal/analysis/regime"
	"marketlens/internal/config"
	"marketlens/internal/decision"
	"marketlens/internal/gateway/binance"
	"marketlens/internal/ledger"
	"marketlens/internal/notify"
	"marketlens/internal/store/eventstore"
	transporthttp "marketlens/internal/transport/http"
)

// App owns the assembled object graph.
type App struct {
	cfg    *config.Config
	store  *eventstore.Store
	server *transporthttp.Server
}

// New builds the full service graph from one validated config snapshot.
func New(cfg *config.Config) (*App, error) {
	store, err := eventstore.New(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	source, err := binance.New(binance.Config{
		RESTBaseURL:      cfg.Market.RESTBaseURL,
		HTTPTimeout:      time.Duration(cfg.Market.HTTPTimeoutSeconds) * time.Second,
		Timeframe:        cfg.Market.Timeframe,
		CandleLimit:      cfg.Market.CandleLimit,
		ReferenceSymbol:  cfg.Market.ReferenceSymbol,
		ATRPeriod:        cfg.Market.ATRPeriod,
		OscillatorPeriod: cfg.Market.OscillatorPeriod,
		VWAPWindow:       cfg.Market.VWAPWindow,
		ROCPeriod:        cfg.Market.ROCPeriod,
		OIWindow:         cfg.Market.OIWindow,
		OIHotRatio:       cfg.Market.OIHotRatio,
		OIColdRatio:      cfg.Market.OIColdRatio,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	engine := decision.NewEngine(EngineConfig(cfg))
	svc := NewService(ledger.New(store), source, engine, store, notify.LogNotifier{})
	server := transporthttp.NewServer(cfg.Server.Addr, cfg.Server.WebhookSecret, svc, store)

	return &App{cfg: cfg, store: store, server: server}, nil
}

// EngineConfig maps the config snapshot onto the engine's parameter
// sets. Kept exported so tests can build an identically tuned engine.
func EngineConfig(cfg *config.Config) decision.EngineConfig {
	return decision.EngineConfig{
		Levels: level.Params{
			Window:              cfg.Levels.Window,
			MergeDistanceFactor: cfg.Levels.MergeATR,
			TouchWeight:         cfg.Levels.TouchWeight,
			AgeWeight:           cfg.Levels.AgeWeight,
			GhostThreshold:      cfg.Levels.GhostThreshold,
		},
		Regime: regime.Params{
			Window:     cfg.Regime.Window,
			MinSamples: cfg.Regime.MinSamples,
			ZThreshold: cfg.Regime.ZThreshold,
		},
		Scoring: decision.ScoringParams{
			Base:                 cfg.Scoring.Base,
			StrongBonus:          cfg.Scoring.StrongBonus,
			WeakPenalty:          cfg.Scoring.WeakPenalty,
			ExpansionBonus:       cfg.Scoring.ExpansionBonus,
			CompressionPenalty:   cfg.Scoring.CompressionPenalty,
			OscillatorBonus:      cfg.Scoring.OscillatorBonus,
			HotBonus:             cfg.Scoring.HotBonus,
			ColdPenalty:          cfg.Scoring.ColdPenalty,
			Oversold:             cfg.Scoring.Oversold,
			Overbought:           cfg.Scoring.Overbought,
			Threshold:            cfg.Scoring.Threshold,
			CompressionThreshold: cfg.Scoring.CompressionThreshold,
		},
		Cascade: decision.CascadeParams{
			MinCandles:       level.MinCandles,
			MaxLevelDistance: cfg.Kevlar.MaxLevelDistance,
			MomentumBars:     cfg.Kevlar.MomentumBars,
			MomentumLimit:    cfg.Kevlar.MomentumLimit,
			PanicFloor:       cfg.Kevlar.PanicFloor,
			FomoCeiling:      cfg.Kevlar.FomoCeiling,
			PanicScoreFloor:  cfg.Kevlar.PanicScoreFloor,
			FundingTrap:      cfg.Kevlar.FundingTrap,
			AntiTrapDistance: cfg.Kevlar.AntiTrapDistance,
		},
		Order: decision.OrderParams{
			StopATR:       cfg.Trading.StopATR,
			TP1ATR:        cfg.Trading.TP1ATR,
			TP2ATR:        cfg.Trading.TP2ATR,
			TP3ATR:        cfg.Trading.TP3ATR,
			MinRRR:        cfg.Trading.MinRRR,
			FundingCap:    cfg.Trading.FundingCap,
			FundingMinRRR: cfg.Trading.FundingMinRRR,
			LotStep:       cfg.Trading.LotStep,
		},
		Capital:      cfg.Trading.Capital,
		RiskFraction: cfg.Trading.RiskFraction,
	}
}

// Run serves until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()
	return a.server.Run(ctx)
}
