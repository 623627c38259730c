package ledger

import (
	"context"
	"sync"
	"testing"

	"marketlens/internal/market"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	rows    map[string]EventRecord
	inserts int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]EventRecord)}
}

func (m *memStore) InsertEvent(_ context.Context, rec EventRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	if _, ok := m.rows[rec.EventID]; ok {
		return false, nil
	}
	m.rows[rec.EventID] = rec
	return true, nil
}

func validEvent() market.SignalEvent {
	return market.SignalEvent{
		Symbol:    "BTCUSDT",
		Timeframe: "30m",
		BarTime:   1_700_000_000,
		EventType: market.EventSupportTest,
		Level:     64250.5,
		ZoneHalf:  120.25,
	}
}

func TestEventIDDeterministic(t *testing.T) {
	ev := validEvent()
	id1 := EventID(ev)
	id2 := EventID(ev)
	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)

	changed := ev
	changed.Level += 0.00000001
	assert.NotEqual(t, id1, EventID(changed), "level is part of the identity")

	changed = ev
	changed.BarTime++
	assert.NotEqual(t, id1, EventID(changed), "bar time is part of the identity")
}

func TestAdmitFirstWriterWins(t *testing.T) {
	store := newMemStore()
	lg := New(store)
	ctx := context.Background()

	adm, err := lg.Admit(ctx, validEvent())
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", adm.Event.Symbol)
	assert.NotEmpty(t, adm.EventID)

	_, err = lg.Admit(ctx, validEvent())
	var dup *DuplicateEventError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, adm.EventID, dup.EventID)
	assert.Equal(t, 2, store.inserts, "duplicate still hits the atomic insert, nothing else")
}

func TestAdmitRejectsBeforeStore(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(ev *market.SignalEvent)
		field string
	}{
		{"lowercase symbol", func(ev *market.SignalEvent) { ev.Symbol = "btc" }, "symbol"},
		{"disallowed quote", func(ev *market.SignalEvent) { ev.Symbol = "BTC1/XXX" }, "symbol"},
		{"overlong base", func(ev *market.SignalEvent) { ev.Symbol = "TOOLONGSYMBOL123" }, "symbol"},
		{"pre-2020 bar time", func(ev *market.SignalEvent) { ev.BarTime = 1_500_000_000 }, "bar_time"},
		{"missing timeframe", func(ev *market.SignalEvent) { ev.Timeframe = " " }, "tf"},
		{"unknown event type", func(ev *market.SignalEvent) { ev.EventType = "LEVEL_POKE" }, "event"},
		{"non-positive level", func(ev *market.SignalEvent) { ev.Level = 0 }, "level"},
		{"negative zone", func(ev *market.SignalEvent) { ev.ZoneHalf = -1 }, "zone_half"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			lg := New(store)
			ev := validEvent()
			tc.mut(&ev)

			_, err := lg.Admit(context.Background(), ev)
			var invalid *ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.field, invalid.Field)
			assert.Zero(t, store.inserts, "rejected event must never reach the store")
		})
	}
}

func TestAdmitConcurrentSameIdentity(t *testing.T) {
	store := newMemStore()
	lg := New(store)

	const n = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lg.Admit(context.Background(), validEvent()); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, admitted, "exactly one writer wins admission")
}
