package decision

import (
	"fmt"
	"time"

	"marketlens/internal/analysis/level"
	"marketlens/internal/analysis/regime"
	"marketlens/internal/logger"
	"marketlens/internal/market"

	"github.com/google/uuid"
)

// EngineConfig assembles the fixed parameters of one engine instance.
// It is captured at construction and never re-read mid-cycle.
type EngineConfig struct {
	Levels  level.Params
	Regime  regime.Params
	Scoring ScoringParams
	Cascade CascadeParams
	Order   OrderParams

	Capital      float64
	RiskFraction float64
}

// Engine runs one synchronous, pure decision cycle per admitted event.
type Engine struct {
	levels  *level.Engine
	regimes *regime.Classifier
	scoring ScoringParams
	cascade CascadeParams
	order   OrderParams

	capital      float64
	riskFraction float64

	nowFn   func() time.Time
	traceFn func() string
}

func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		levels:       level.NewEngine(cfg.Levels),
		regimes:      regime.New(cfg.Regime),
		scoring:      cfg.Scoring,
		cascade:      cfg.Cascade,
		order:        cfg.Order,
		capital:      cfg.Capital,
		riskFraction: cfg.RiskFraction,
		nowFn:        func() time.Time { return time.Now().UTC() },
		traceFn:      uuid.NewString,
	}
}

// NoTrade builds the fail-closed record for an event whose market
// snapshot could not be assembled at all.
func (e *Engine) NoTrade(eventID string, ev market.SignalEvent, cause error) *DecisionRecord {
	rec := &DecisionRecord{
		EventID:   eventID,
		TraceID:   e.traceFn(),
		Symbol:    ev.Symbol,
		BarTime:   ev.BarTime,
		CreatedAt: e.nowFn(),
	}
	return noTrade(rec, cause)
}

// Decide maps (event, snapshot) to a DecisionRecord. Every failure path
// resolves to a NO_TRADE record carrying its specific cause; nothing is
// silently defaulted. The snapshot is treated as immutable throughout.
func (e *Engine) Decide(eventID string, ev market.SignalEvent, snap *market.Snapshot) *DecisionRecord {
	rec := &DecisionRecord{
		EventID:   eventID,
		TraceID:   e.traceFn(),
		Symbol:    ev.Symbol,
		BarTime:   ev.BarTime,
		CreatedAt: e.nowFn(),
	}

	kind, side, err := directionFor(ev.EventType)
	if err != nil {
		return noTrade(rec, err)
	}
	if snap == nil {
		return noTrade(rec, &DataIntegrityError{Reason: "market snapshot missing"})
	}
	if err := market.ValidateSeries(snap.Candles, snap.Timeframe); err != nil {
		return noTrade(rec, &DataIntegrityError{Reason: err.Error()})
	}

	allLevels, err := e.levels.Detect(snap.Candles, snap.ATR)
	if err != nil {
		return noTrade(rec, &DataIntegrityError{Reason: err.Error()})
	}
	candidate, ok := e.matchCandidate(allLevels, kind, ev.Level, snap.ATR)
	if !ok {
		return noTrade(rec, &DataIntegrityError{Reason: fmt.Sprintf("no actionable %s level near %v", kind, ev.Level)})
	}

	reg, err := e.regimes.Classify(snap.ReferenceROC)
	if err != nil {
		return noTrade(rec, &DataIntegrityError{Reason: err.Error()})
	}

	pscore := Score(ScoreInput{
		Grade:      candidate.Grade(),
		Kind:       candidate.Kind,
		Regime:     reg.State,
		Oscillator: snap.Oscillator,
		OITier:     snap.OITier,
	}, e.scoring)
	rec.PScore = &pscore

	verdict := RunCascade(CascadeInput{
		Side:     side,
		Level:    candidate,
		PScore:   pscore,
		Snapshot: snap,
	}, e.cascade)
	rec.Kevlar = &verdict
	if !verdict.Passed {
		return noTrade(rec, &GateFailure{Gate: verdict.FirstFailingGate, Detail: failDetail(verdict)})
	}

	anti := AntiTrap(side, candidate.Price, allLevels, e.cascade)
	verdict.Results = append(verdict.Results, anti)
	if !anti.Passed {
		verdict.Passed = false
		verdict.FirstFailingGate = anti.Gate
		return noTrade(rec, &GateFailure{Gate: anti.Gate, Detail: anti.Detail})
	}

	plan, err := BuildPlan(OrderInput{
		Side:         side,
		Level:        candidate.Price,
		ATR:          snap.ATR,
		Capital:      e.capital,
		RiskFraction: e.riskFraction,
		FundingRate:  snap.FundingRate,
	}, e.order)
	if err != nil {
		return noTrade(rec, err)
	}

	rec.Decision = OutcomeTrade
	rec.Plan = plan
	logger.Infof("decision TRADE %s %s entry=%v stop=%v size=%v rrr=%v",
		rec.Symbol, plan.Side, plan.Entry, plan.StopLoss, plan.PositionSize, plan.RRR)
	return rec
}

// matchCandidate picks the actionable level of the required kind nearest
// the event price, rejecting matches outside the merge tolerance. Ghost
// levels are not eligible.
func (e *Engine) matchCandidate(levels []level.Level, kind level.Kind, price, atr float64) (level.Level, bool) {
	candidate, ok := level.Nearest(e.levels.Actionable(levels), kind, price)
	if !ok {
		return level.Level{}, false
	}
	if diff := candidate.Price - price; diff > e.levels.MergeDistance(atr) || -diff > e.levels.MergeDistance(atr) {
		return level.Level{}, false
	}
	return candidate, true
}

func directionFor(t market.EventType) (level.Kind, Side, error) {
	switch t {
	case market.EventSupportTest:
		return level.KindSupport, SideLong, nil
	case market.EventResistanceTest:
		return level.KindResistance, SideShort, nil
	default:
		return "", "", &DataIntegrityError{Reason: fmt.Sprintf("unknown event type %q", t)}
	}
}

func failDetail(v KevlarVerdict) string {
	for _, r := range v.Results {
		if r.Gate == v.FirstFailingGate {
			return r.Detail
		}
	}
	return ""
}

func noTrade(rec *DecisionRecord, cause error) *DecisionRecord {
	rec.Decision = OutcomeNoTrade
	rec.Reason = cause.Error()
	logger.Debugf("decision NO_TRADE %s: %s", rec.Symbol, rec.Reason)
	return rec
}
