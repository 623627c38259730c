package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"marketlens/internal/market"
	"marketlens/internal/pkg/symbol"
)

// minBarTime is 2020-01-01T00:00:00Z; anything earlier cannot be a
// plausible live bar timestamp in seconds.
const minBarTime = 1_577_836_800

// EventRecord is what the ledger persists per admitted identity.
type EventRecord struct {
	EventID   string
	Symbol    string
	EventType string
	BarTime   int64
	Payload   []byte
}

// Store is the durable insert-if-absent primitive. The first writer for
// an identity returns true; every later writer returns false. The
// implementation must make this atomic (uniqueness constraint).
type Store interface {
	InsertEvent(ctx context.Context, rec EventRecord) (bool, error)
}

// Admission is a validated, normalized, deduplicated event.
type Admission struct {
	Event   market.SignalEvent
	EventID string
}

// Ledger assigns deterministic identities and enforces at-most-once
// admission.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// EventID is the content-addressed identity: SHA-256 over the ordered
// tuple SYMBOL|TF|BARTIME|EVENT|LEVEL|ZONE. Floats are fixed to eight
// decimals so the digest survives float formatting drift.
func EventID(ev market.SignalEvent) string {
	raw := fmt.Sprintf("%s|%s|%d|%s|%.8f|%.8f",
		ev.Symbol, ev.Timeframe, ev.BarTime, ev.EventType, ev.Level, ev.ZoneHalf)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Admit validates and normalizes the event, computes its identity and
// performs the atomic first-writer-wins insert. Returns
// *ValidationError for malformed events and *DuplicateEventError when
// the identity was already admitted.
func (l *Ledger) Admit(ctx context.Context, ev market.SignalEvent) (Admission, error) {
	norm, err := l.normalize(ev)
	if err != nil {
		return Admission{}, err
	}
	id := EventID(norm)

	payload, err := json.Marshal(norm)
	if err != nil {
		return Admission{}, fmt.Errorf("marshal event payload: %w", err)
	}
	inserted, err := l.store.InsertEvent(ctx, EventRecord{
		EventID:   id,
		Symbol:    norm.Symbol,
		EventType: string(norm.EventType),
		BarTime:   norm.BarTime,
		Payload:   payload,
	})
	if err != nil {
		return Admission{}, fmt.Errorf("admission insert: %w", err)
	}
	if !inserted {
		return Admission{}, &DuplicateEventError{EventID: id}
	}
	return Admission{Event: norm, EventID: id}, nil
}

func (l *Ledger) normalize(ev market.SignalEvent) (market.SignalEvent, error) {
	sym, err := symbol.Normalize(ev.Symbol)
	if err != nil {
		return market.SignalEvent{}, &ValidationError{Field: "symbol", Reason: err.Error()}
	}
	ev.Symbol = sym.Internal()

	if ev.BarTime <= minBarTime {
		return market.SignalEvent{}, &ValidationError{Field: "bar_time", Reason: fmt.Sprintf("%d is not a plausible unix timestamp (must post-date 2020-01-01)", ev.BarTime)}
	}
	if strings.TrimSpace(ev.Timeframe) == "" {
		return market.SignalEvent{}, &ValidationError{Field: "tf", Reason: "timeframe required"}
	}
	switch ev.EventType {
	case market.EventSupportTest, market.EventResistanceTest:
	default:
		return market.SignalEvent{}, &ValidationError{Field: "event", Reason: fmt.Sprintf("unknown event type %q", ev.EventType)}
	}
	if ev.Level <= 0 {
		return market.SignalEvent{}, &ValidationError{Field: "level", Reason: "level price must be positive"}
	}
	if ev.ZoneHalf < 0 {
		return market.SignalEvent{}, &ValidationError{Field: "zone_half", Reason: "zone half-width cannot be negative"}
	}
	return ev, nil
}
