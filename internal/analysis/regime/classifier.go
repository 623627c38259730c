package regime

import (
	"fmt"
	"math"
)

// State is the broad volatility/trend classification of the reference
// asset, owned transiently per decision.
type State string

const (
	StateExpansion   State = "EXPANSION"
	StateCompression State = "COMPRESSION"
	StateNeutral     State = "NEUTRAL"
)

// Params configure the rolling z-score window.
type Params struct {
	Window     int
	MinSamples int
	ZThreshold float64
}

func (p Params) withDefaults() Params {
	if p.Window <= 0 {
		p.Window = 180
	}
	if p.MinSamples <= 0 {
		p.MinSamples = p.Window
	}
	if p.ZThreshold <= 0 {
		p.ZThreshold = 1.25
	}
	return p
}

// Classifier derives the regime from a reference asset's rate-of-change
// series.
type Classifier struct {
	params Params
}

func New(params Params) *Classifier {
	return &Classifier{params: params.withDefaults()}
}

// Result carries the classification together with the z-score that
// produced it, for audit.
type Result struct {
	State  State
	ZScore float64
}

// Classify takes the ROC series (oldest first, current value last) and
// z-scores the current value against the trailing window. Too few
// samples or a degenerate (zero stddev) window is a data-integrity
// failure, never a silent NEUTRAL.
func (c *Classifier) Classify(roc []float64) (Result, error) {
	if len(roc) < c.params.MinSamples {
		return Result{}, fmt.Errorf("regime: need at least %d roc samples, got %d", c.params.MinSamples, len(roc))
	}
	window := roc
	if len(window) > c.params.Window {
		window = window[len(window)-c.params.Window:]
	}

	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(len(window))
	var variance float64
	for _, v := range window {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(window))
	std := math.Sqrt(variance)
	if std == 0 {
		return Result{}, fmt.Errorf("regime: zero stddev over %d samples", len(window))
	}

	z := (roc[len(roc)-1] - mean) / std
	switch {
	case z > c.params.ZThreshold:
		return Result{State: StateCompression, ZScore: z}, nil
	case z < -c.params.ZThreshold:
		return Result{State: StateExpansion, ZScore: z}, nil
	default:
		return Result{State: StateNeutral, ZScore: z}, nil
	}
}
