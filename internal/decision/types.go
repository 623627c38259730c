package decision

import "time"

// Side of a proposed order.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Outcome of a decision cycle.
type Outcome string

const (
	OutcomeTrade   Outcome = "TRADE"
	OutcomeNoTrade Outcome = "NO_TRADE"
)

// PScoreResult is the probability score with per-factor attribution.
// Immutable once computed.
type PScoreResult struct {
	Value         int            `json:"value"`
	Contributions map[string]int `json:"contributions"`
	ThresholdUsed int            `json:"threshold_used"`
}

// GateResult is one evaluated cascade gate with the inputs it looked at.
type GateResult struct {
	Gate   string `json:"gate"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// KevlarVerdict is the cascade outcome. Results holds only gates that
// actually ran: the cascade short-circuits, so gates after the first
// failure are absent rather than marked skipped.
type KevlarVerdict struct {
	Passed           bool         `json:"passed"`
	FirstFailingGate string       `json:"first_failing_gate,omitempty"`
	Results          []GateResult `json:"results"`
}

// OrderPlan is a fully specified order. It exists only for TRADE
// decisions; a blocked calculation never yields a partial plan.
type OrderPlan struct {
	Side         Side    `json:"side"`
	Entry        float64 `json:"entry"`
	StopLoss     float64 `json:"stop_loss"`
	TP1          float64 `json:"tp1"`
	TP2          float64 `json:"tp2"`
	TP3          float64 `json:"tp3"`
	PositionSize float64 `json:"position_size"`
	RiskAmount   float64 `json:"risk_amount"`
	// RRR is computed against TP2.
	RRR float64 `json:"rrr"`
}

// DecisionRecord is the sole externally visible output of the core.
// Append-only: it is never mutated after creation.
type DecisionRecord struct {
	EventID   string         `json:"event_id"`
	TraceID   string         `json:"trace_id"`
	Symbol    string         `json:"symbol"`
	BarTime   int64          `json:"bar_time"`
	Decision  Outcome        `json:"decision"`
	Reason    string         `json:"reason,omitempty"`
	PScore    *PScoreResult  `json:"p_score,omitempty"`
	Kevlar    *KevlarVerdict `json:"kevlar,omitempty"`
	Plan      *OrderPlan     `json:"order_plan,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
