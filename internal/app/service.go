package app

import (
	"context"
	"fmt"

	"marketlens/internal/decision"
	"marketlens/internal/ledger"
	"marketlens/internal/logger"
	"marketlens/internal/market"
	"marketlens/internal/notify"
	symbolpkg "marketlens/internal/pkg/symbol"
)

// SnapshotSource provides the immutable market context for one cycle.
type SnapshotSource interface {
	Snapshot(ctx context.Context, sym symbolpkg.Symbol) (*market.Snapshot, error)
}

// DecisionStore persists finished records.
type DecisionStore interface {
	SaveDecision(ctx context.Context, rec *decision.DecisionRecord) error
}

// Service glues admission, snapshot assembly, the decision engine and
// persistence into the per-event control flow. Cycles for different
// identities may run concurrently; the ledger's atomic insert
// serializes same-identity events.
type Service struct {
	ledger   *ledger.Ledger
	source   SnapshotSource
	engine   *decision.Engine
	store    DecisionStore
	notifier notify.Notifier
}

func NewService(lg *ledger.Ledger, source SnapshotSource, engine *decision.Engine, store DecisionStore, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Service{ledger: lg, source: source, engine: engine, store: store, notifier: notifier}
}

// Admit runs validation, normalization and the first-writer-wins check.
func (s *Service) Admit(ctx context.Context, ev market.SignalEvent) (ledger.Admission, error) {
	return s.ledger.Admit(ctx, ev)
}

// Process runs one full decision cycle for an admitted event. A failed
// snapshot fetch resolves to a fail-closed NO_TRADE record, never a
// silent skip.
func (s *Service) Process(ctx context.Context, adm ledger.Admission) (*decision.DecisionRecord, error) {
	sym, err := symbolpkg.Normalize(adm.Event.Symbol)
	if err != nil {
		return nil, fmt.Errorf("admitted event has unusable symbol %q: %w", adm.Event.Symbol, err)
	}

	var rec *decision.DecisionRecord
	snap, err := s.source.Snapshot(ctx, sym)
	if err != nil {
		logger.Warnf("snapshot unavailable for %s: %v", adm.Event.Symbol, err)
		rec = s.engine.NoTrade(adm.EventID, adm.Event, &decision.DataIntegrityError{Reason: err.Error()})
	} else {
		rec = s.engine.Decide(adm.EventID, adm.Event, snap)
	}

	if err := s.store.SaveDecision(ctx, rec); err != nil {
		return rec, fmt.Errorf("persist decision %s: %w", rec.EventID, err)
	}
	if err := s.notifier.Publish(ctx, rec); err != nil {
		logger.Warnf("notify failed for %s: %v", rec.EventID, err)
	}
	return rec, nil
}
