package transporthttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketlens/internal/decision"
	"marketlens/internal/ledger"
	"marketlens/internal/market"
	"marketlens/internal/store/eventstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "sniper-secret"

type stubService struct {
	admitErr  error
	processed chan ledger.Admission
}

func newStubService() *stubService {
	return &stubService{processed: make(chan ledger.Admission, 1)}
}

func (s *stubService) Admit(_ context.Context, ev market.SignalEvent) (ledger.Admission, error) {
	if s.admitErr != nil {
		return ledger.Admission{}, s.admitErr
	}
	return ledger.Admission{Event: ev, EventID: "id-1"}, nil
}

func (s *stubService) Process(_ context.Context, adm ledger.Admission) (*decision.DecisionRecord, error) {
	s.processed <- adm
	return &decision.DecisionRecord{EventID: adm.EventID, Decision: decision.OutcomeNoTrade}, nil
}

type stubReader struct {
	rows []eventstore.DecisionModel
	err  error
}

func (r *stubReader) RecentDecisions(context.Context, string, int) ([]eventstore.DecisionModel, error) {
	return r.rows, r.err
}

func validBody() string {
	return `{"event":"SUPPORT_TEST","symbol":"BTCUSDT","tf":"30m","bar_time":1700001000,"level":64250.5,"zone_half":120.25}`
}

func doWebhook(srv *Server, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tv/webhook", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretHeader, secret)
	}
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, req)
	return w
}

func TestWebhookAuth(t *testing.T) {
	svc := newStubService()
	srv := NewServer(":0", testSecret, svc, nil)

	assert.Equal(t, http.StatusUnauthorized, doWebhook(srv, "", validBody()).Code)
	assert.Equal(t, http.StatusUnauthorized, doWebhook(srv, "wrong", validBody()).Code)

	// An unset server secret rejects everything instead of going open.
	open := NewServer(":0", "", svc, nil)
	assert.Equal(t, http.StatusUnauthorized, doWebhook(open, "anything", validBody()).Code)
}

func TestWebhookAcceptsAndProcessesAsync(t *testing.T) {
	svc := newStubService()
	srv := NewServer(":0", testSecret, svc, nil)

	w := doWebhook(srv, testSecret, validBody())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received"`)
	assert.Contains(t, w.Body.String(), `"id-1"`)

	select {
	case adm := <-svc.processed:
		assert.Equal(t, "id-1", adm.EventID)
		assert.Equal(t, "BTCUSDT", adm.Event.Symbol)
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline was never invoked")
	}
}

func TestWebhookMalformedPayload(t *testing.T) {
	svc := newStubService()
	srv := NewServer(":0", testSecret, svc, nil)

	w := doWebhook(srv, testSecret, `{"event":"LEVEL_POKE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	select {
	case <-svc.processed:
		t.Fatal("rejected payload must not reach the pipeline")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWebhookDuplicateIsAcknowledged(t *testing.T) {
	svc := newStubService()
	svc.admitErr = &ledger.DuplicateEventError{EventID: "dup-1"}
	srv := NewServer(":0", testSecret, svc, nil)

	w := doWebhook(srv, testSecret, validBody())
	assert.Equal(t, http.StatusOK, w.Code, "duplicates are acknowledged, never retried")
	assert.Contains(t, w.Body.String(), `"ignored_duplicate"`)
	assert.Contains(t, w.Body.String(), `"dup-1"`)
}

func TestWebhookValidationFailure(t *testing.T) {
	svc := newStubService()
	svc.admitErr = &ledger.ValidationError{Field: "symbol", Reason: "bad"}
	srv := NewServer(":0", testSecret, svc, nil)

	assert.Equal(t, http.StatusBadRequest, doWebhook(srv, testSecret, validBody()).Code)
}

func TestWebhookStoreFailure(t *testing.T) {
	svc := newStubService()
	svc.admitErr = errors.New("disk full")
	srv := NewServer(":0", testSecret, svc, nil)

	w := doWebhook(srv, testSecret, validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full", "internal detail stays out of the response")
}

func TestHealthz(t *testing.T) {
	srv := NewServer(":0", testSecret, newStubService(), nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDecisionsEndpoint(t *testing.T) {
	reader := &stubReader{rows: []eventstore.DecisionModel{{EventID: "e1", Symbol: "BTC/USDT", Decision: "TRADE"}}}
	srv := NewServer(":0", testSecret, newStubService(), reader)

	req := httptest.NewRequest(http.MethodGet, "/api/decisions?symbol=BTC/USDT&limit=5", nil)
	w := httptest.NewRecorder()
	srv.router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"e1"`)

	// Without a configured reader the endpoint is absent, not broken.
	bare := NewServer(":0", testSecret, newStubService(), nil)
	w = httptest.NewRecorder()
	bare.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/decisions", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
