package transporthttp

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"marketlens/internal/decision"
	"marketlens/internal/ledger"
	"marketlens/internal/logger"
	"marketlens/internal/market"
	"marketlens/internal/store/eventstore"

	"github.com/gin-gonic/gin"
)

const secretHeader = "X-ML-SECRET"

// SignalService is the pipeline entry the transport hands events to.
type SignalService interface {
	Admit(ctx context.Context, ev market.SignalEvent) (ledger.Admission, error)
	Process(ctx context.Context, adm ledger.Admission) (*decision.DecisionRecord, error)
}

// DecisionReader serves the audit endpoint.
type DecisionReader interface {
	RecentDecisions(ctx context.Context, symbol string, limit int) ([]eventstore.DecisionModel, error)
}

// Server is the webhook shell around the decision core. Authenticity
// verification happens here; the core trusts admitted events.
type Server struct {
	addr    string
	secret  string
	service SignalService
	reader  DecisionReader
	httpSrv *http.Server
}

func NewServer(addr, secret string, service SignalService, reader DecisionReader) *Server {
	return &Server{addr: addr, secret: secret, service: service, reader: reader}
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/tv/webhook", s.handleWebhook)
	r.GET("/api/decisions", s.handleDecisions)
	return r
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.router()}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("webhook server listening on %s", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleWebhook(c *gin.Context) {
	if !s.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret"})
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 64<<10))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	ev, err := ParsePayload(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adm, err := s.service.Admit(c.Request.Context(), ev)
	var dup *ledger.DuplicateEventError
	var invalid *ledger.ValidationError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusOK, gin.H{"status": "ignored_duplicate", "id": dup.EventID})
		return
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	case err != nil:
		logger.Errorf("admission failed for %s: %v", ev.Symbol, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admission failed"})
		return
	}

	// Ack immediately; the pipeline runs off the request goroutine.
	go func(adm ledger.Admission) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.service.Process(ctx, adm); err != nil {
			logger.Errorf("pipeline failed for %s (%s): %v", adm.Event.Symbol, adm.EventID, err)
		}
	}(adm)

	c.JSON(http.StatusOK, gin.H{"status": "received", "id": adm.EventID})
}

func (s *Server) authorized(c *gin.Context) bool {
	if s.secret == "" {
		return false
	}
	got := c.GetHeader(secretHeader)
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) == 1
}

func (s *Server) handleDecisions(c *gin.Context) {
	if s.reader == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "decision log unavailable"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := s.reader.RecentDecisions(c.Request.Context(), c.Query("symbol"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": rows})
}
