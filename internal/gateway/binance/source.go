package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"marketlens/internal/analysis/indicator"
	"marketlens/internal/logger"
	"marketlens/internal/market"
	symbolpkg "marketlens/internal/pkg/symbol"

	"github.com/adshao/go-binance/v2/futures"
	"golang.org/x/sync/errgroup"
)

const maxKlineLimit = 1500

// Source assembles one immutable market.Snapshot per decision cycle
// from the Binance futures REST API.
type Source struct {
	cfg       Config
	client    *futures.Client
	timeframe time.Duration
}

func New(cfg Config) (*Source, error) {
	final := cfg.withDefaults()
	tf, err := time.ParseDuration(final.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("binance source: invalid timeframe %q: %w", final.Timeframe, err)
	}
	client := futures.NewClient("", "")
	if base := strings.TrimSpace(final.RESTBaseURL); base != "" {
		client.BaseURL = base
	}
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Source{cfg: final, client: client, timeframe: tf}, nil
}

// Snapshot fetches candles, the reference series, funding and open
// interest in parallel and derives the indicator set. The result is
// complete or nil: a partial snapshot would defeat the fail-closed
// gates downstream.
func (s *Source) Snapshot(ctx context.Context, sym symbolpkg.Symbol) (*market.Snapshot, error) {
	var (
		candles   []market.Candle
		refCloses []float64
		funding   float64
		oiTier    market.OITier
		oiLatest  float64
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		candles, err = s.fetchCandles(gctx, sym.Binance())
		return err
	})
	group.Go(func() error {
		ref, err := symbolpkg.Normalize(s.cfg.ReferenceSymbol)
		if err != nil {
			return fmt.Errorf("reference symbol: %w", err)
		}
		refCandles, err := s.fetchCandles(gctx, ref.Binance())
		if err != nil {
			return err
		}
		refCloses = market.Closes(refCandles)
		return nil
	})
	group.Go(func() error {
		var err error
		funding, err = s.fetchFunding(gctx, sym.Binance())
		return err
	})
	group.Go(func() error {
		var err error
		oiTier, oiLatest, err = s.fetchOITier(gctx, sym.Binance())
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	atr, err := indicator.ATR(candles, s.cfg.ATRPeriod)
	if err != nil {
		return nil, err
	}
	osc, err := indicator.RSI(candles, s.cfg.OscillatorPeriod)
	if err != nil {
		return nil, err
	}
	vwap, err := indicator.VWAP(candles, s.cfg.VWAPWindow)
	if err != nil {
		return nil, err
	}
	roc, err := indicator.ROC(refCloses, s.cfg.ROCPeriod)
	if err != nil {
		return nil, err
	}

	snap := &market.Snapshot{
		Symbol:       sym.Internal(),
		Price:        candles[len(candles)-1].Close,
		Candles:      candles,
		Timeframe:    s.timeframe,
		ATR:          atr,
		VWAP:         vwap,
		Oscillator:   osc,
		FundingRate:  funding,
		OpenInterest: oiLatest,
		OITier:       oiTier,
		ReferenceROC: roc,
		CapturedAt:   time.Now().UTC(),
	}
	logger.Debugf("snapshot %s price=%v atr=%v osc=%.1f funding=%.5f oi=%s",
		snap.Symbol, snap.Price, snap.ATR, snap.Oscillator, snap.FundingRate, snap.OITier)
	return snap, nil
}

func (s *Source) fetchCandles(ctx context.Context, exSymbol string) ([]market.Candle, error) {
	limit := s.cfg.CandleLimit
	if limit > maxKlineLimit {
		limit = maxKlineLimit
	}
	kls, err := s.client.NewKlinesService().
		Symbol(exSymbol).
		Interval(s.cfg.Timeframe).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("klines %s: %w", exSymbol, err)
	}
	out := make([]market.Candle, 0, len(kls))
	for _, kl := range kls {
		if kl == nil {
			continue
		}
		out = append(out, market.Candle{
			OpenTime: kl.OpenTime,
			Open:     parseFloat(kl.Open),
			High:     parseFloat(kl.High),
			Low:      parseFloat(kl.Low),
			Close:    parseFloat(kl.Close),
			Volume:   parseFloat(kl.Volume),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("klines %s: empty response", exSymbol)
	}
	return out, nil
}

func (s *Source) fetchFunding(ctx context.Context, exSymbol string) (float64, error) {
	idx, err := s.client.NewPremiumIndexService().Symbol(exSymbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("premium index %s: %w", exSymbol, err)
	}
	if len(idx) == 0 || idx[0] == nil {
		return 0, fmt.Errorf("premium index %s: empty response", exSymbol)
	}
	return parseFloat(idx[0].LastFundingRate), nil
}

// fetchOITier buckets the latest open interest against its recent mean.
func (s *Source) fetchOITier(ctx context.Context, exSymbol string) (market.OITier, float64, error) {
	stats, err := s.client.NewOpenInterestStatisticsService().
		Symbol(exSymbol).
		Period(s.cfg.Timeframe).
		Limit(s.cfg.OIWindow).
		Do(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("open interest %s: %w", exSymbol, err)
	}
	if len(stats) == 0 {
		return "", 0, fmt.Errorf("open interest %s: empty response", exSymbol)
	}
	var sum float64
	for _, st := range stats {
		sum += parseFloat(st.SumOpenInterest)
	}
	mean := sum / float64(len(stats))
	latest := parseFloat(stats[len(stats)-1].SumOpenInterest)
	if mean == 0 {
		return "", 0, fmt.Errorf("open interest %s: zero mean over %d samples", exSymbol, len(stats))
	}
	return s.tierFor(latest / mean), latest, nil
}

func (s *Source) tierFor(ratio float64) market.OITier {
	switch {
	case ratio >= s.cfg.OIHotRatio:
		return market.OITierHot
	case ratio <= s.cfg.OIColdRatio:
		return market.OITierCold
	default:
		return market.OITierNeutral
	}
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
