package notify

import (
	"context"

	"marketlens/internal/decision"
	"marketlens/internal/logger"
)

// Notifier consumes finished decision records. Delivery formatting is a
// collaborator concern; the pipeline only hands over the record.
type Notifier interface {
	Publish(ctx context.Context, rec *decision.DecisionRecord) error
}

// LogNotifier writes a one-line summary per record. Default sink when
// no external channel is configured.
type LogNotifier struct{}

func (LogNotifier) Publish(_ context.Context, rec *decision.DecisionRecord) error {
	if rec == nil {
		return nil
	}
	switch rec.Decision {
	case decision.OutcomeTrade:
		logger.Infof("notify %s TRADE %s entry=%v stop=%v tp2=%v size=%v",
			rec.Symbol, rec.Plan.Side, rec.Plan.Entry, rec.Plan.StopLoss, rec.Plan.TP2, rec.Plan.PositionSize)
	default:
		logger.Infof("notify %s NO_TRADE: %s", rec.Symbol, rec.Reason)
	}
	return nil
}
