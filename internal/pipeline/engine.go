package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/internal/metrics"
	"github.com/wonny/ideagen/internal/regime"
	"github.com/wonny/ideagen/internal/selection"
	"github.com/wonny/ideagen/internal/strategy"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/internal/universe"
	"github.com/wonny/ideagen/pkg/logger"
)

// Engine runs S0 → S4 for the configured watchlist
// ⭐ SSOT: 실행 단위 오케스트레이션은 여기서만. 실행 간 상태 없음
type Engine struct {
	cfg        *strategyconfig.Config
	configHash string

	provider contracts.PriceProvider
	sink     contracts.Sink

	regime     *regime.Classifier
	gate       *universe.Gate
	strategies *strategy.Set
	ranker     *selection.Ranker

	metrics *metrics.Recorder
	logger  *logger.Logger

	now   func() time.Time
	runID func() string
}

// Option customises an Engine
type Option func(*Engine)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRunID overrides the run id generator
func WithRunID(gen func() string) Option {
	return func(e *Engine) { e.runID = gen }
}

// WithStrategies replaces the default strategy battery
func WithStrategies(set *strategy.Set) Option {
	return func(e *Engine) { e.strategies = set }
}

// NewEngine wires the pipeline stages from one immutable configuration.
// rec may be nil.
func NewEngine(
	cfg *strategyconfig.Config,
	provider contracts.PriceProvider,
	sink contracts.Sink,
	rec *metrics.Recorder,
	log *logger.Logger,
	opts ...Option,
) (*Engine, error) {
	hash, err := strategyconfig.Hash(cfg)
	if err != nil {
		return nil, fmt.Errorf("hash strategy config: %w", err)
	}

	e := &Engine{
		cfg:        cfg,
		configHash: hash,
		provider:   provider,
		sink:       sink,
		regime:     regime.NewClassifier(cfg.Regime, log),
		gate:       universe.NewGate(cfg),
		strategies: strategy.NewSet(cfg, log),
		ranker:     selection.NewRanker(cfg.Output, log),
		metrics:    rec,
		logger:     log,
		now:        time.Now,
		runID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Stats counts instrument outcomes of one run
type Stats struct {
	Evaluated        int
	FetchFailed      int
	SkippedHistory   int
	SkippedLiquidity int
	Failed           int
	Candidates       int
}

// Result is the outcome of one run
type Result struct {
	Payload *contracts.Payload
	Stats   Stats
}

// InstrumentResult holds the candidate plans of one evaluated instrument
type InstrumentResult struct {
	Symbol string
	Bars   int
	Plans  []contracts.Plan
}

// Ideas pairs every plan with the instrument symbol
func (r *InstrumentResult) Ideas() []contracts.Idea {
	ideas := make([]contracts.Idea, len(r.Plans))
	for i, p := range r.Plans {
		ideas[i] = contracts.Idea{Symbol: r.Symbol, Plan: p}
	}
	return ideas
}

// Run executes one full run. Only a regime failure, a payload write failure or
// context cancellation fails the run; instrument failures are logged and skipped.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := e.runID()
	log := e.logger.WithRun(runID)

	log.WithFields(map[string]interface{}{
		"watchlist":   len(e.cfg.Universe.Watchlist),
		"config_hash": e.configHash[:12],
	}).Info("Starting idea generation")

	result, err := e.run(ctx, runID, log)

	status := "success"
	if err != nil {
		status = "failed"
	}
	e.metrics.RecordRun(status, time.Since(start))

	return result, err
}

func (e *Engine) run(ctx context.Context, runID string, log *logger.Logger) (*Result, error) {
	mr, err := e.marketRegime(ctx)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordRegime(mr.Score)
	log.WithFields(map[string]interface{}{
		"bias":  mr.Bias,
		"score": mr.Score,
	}).Info("Market bias")

	var stats Stats
	var ideas []contracts.Idea

	for _, sym := range e.cfg.Universe.Watchlist {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		res, err := e.Evaluate(ctx, sym)
		if err != nil {
			e.recordFailure(log, &stats, sym, err)
			continue
		}

		stats.Evaluated++
		e.metrics.RecordInstrument(metrics.OutcomeEvaluated)
		for _, p := range res.Plans {
			e.metrics.RecordPlan(p.Strategy, string(p.Horizon))
		}
		ideas = append(ideas, res.Ideas()...)
	}
	stats.Candidates = len(ideas)

	ranked := e.ranker.Rank(ideas)

	payload := &contracts.Payload{
		RunID:       runID,
		GeneratedAt: contracts.FormatTimestamp(e.now()),
		ConfigHash:  e.configHash,
		Watchlist:   append([]string(nil), e.cfg.Universe.Watchlist...),
		MarketBias:  mr,
		Ideas:       ranked.Records(),
		Counts:      ranked.Counts(),
		Disclaimer:  e.cfg.Output.Disclaimer,
	}

	if err := e.sink.WritePayload(ctx, payload); err != nil {
		return nil, fmt.Errorf("write payload: %w", err)
	}
	e.metrics.RecordIdeas(payload.Counts.Short, payload.Counts.Long)

	log.WithStage(contracts.StageEmit).WithFields(map[string]interface{}{
		"ideas":             len(payload.Ideas),
		"short":             payload.Counts.Short,
		"long":              payload.Counts.Long,
		"evaluated":         stats.Evaluated,
		"fetch_failed":      stats.FetchFailed,
		"skipped_history":   stats.SkippedHistory,
		"skipped_liquidity": stats.SkippedLiquidity,
		"failed":            stats.Failed,
	}).Info("Idea generation completed")

	return &Result{Payload: payload, Stats: stats}, nil
}

// marketRegime fetches and classifies the benchmark
func (e *Engine) marketRegime(ctx context.Context) (contracts.MarketRegime, error) {
	bench := e.cfg.Universe.Benchmark
	series, err := e.provider.Fetch(ctx, bench, e.cfg.Universe.Interval)
	if err != nil {
		return contracts.MarketRegime{}, fmt.Errorf("%w: fetch %s: %w", ErrRegimeUnavailable, bench, err)
	}

	mr, err := e.regime.Classify(series)
	if err != nil {
		return contracts.MarketRegime{}, fmt.Errorf("%w: classify %s: %w", ErrRegimeUnavailable, bench, err)
	}
	return mr, nil
}

// Evaluate runs S0 → S2 for one instrument.
// Returns *FetchError or *SkipError for the expected failure kinds.
func (e *Engine) Evaluate(ctx context.Context, sym string) (*InstrumentResult, error) {
	// S0: fetch
	series, err := e.provider.Fetch(ctx, sym, e.cfg.Universe.Interval)
	if err != nil {
		return nil, &FetchError{Symbol: sym, Err: err}
	}

	// S1: gate
	if reason := e.gate.Check(series); reason != universe.ReasonNone {
		return nil, &SkipError{Symbol: sym, Reason: reason}
	}

	// S4 (per instrument): OHLC artifact before strategies
	if err := e.sink.WriteOHLC(ctx, sym, series.ToOHLC(e.cfg.History.OHLCBars)); err != nil {
		return nil, fmt.Errorf("write ohlc %s: %w", sym, err)
	}

	// S2: strategies
	return &InstrumentResult{
		Symbol: sym,
		Bars:   series.Len(),
		Plans:  e.strategies.EvaluateAt(series, e.now()),
	}, nil
}

// recordFailure logs a per-instrument failure by kind
func (e *Engine) recordFailure(log *logger.Logger, stats *Stats, sym string, err error) {
	entry := log.WithSymbol(sym)

	var fetchErr *FetchError
	var skipErr *SkipError
	switch {
	case errors.As(err, &fetchErr):
		stats.FetchFailed++
		e.metrics.RecordInstrument(metrics.OutcomeFetchFailed)
		entry.WithStage(contracts.StageFetch).WithError(fetchErr.Err).Warn("Fetch failed, instrument skipped")

	case errors.As(err, &skipErr) && skipErr.Reason.IsLiquidity():
		stats.SkippedLiquidity++
		e.metrics.RecordInstrument(metrics.OutcomeLiquidity)
		entry.WithStage(contracts.StageGate).WithField("reason", skipErr.Reason).Info("Skipped: liquidity/price filter")

	case errors.As(err, &skipErr):
		stats.SkippedHistory++
		e.metrics.RecordInstrument(metrics.OutcomeHistory)
		entry.WithStage(contracts.StageGate).WithField("reason", skipErr.Reason).Info("Skipped: not enough history")

	default:
		stats.Failed++
		e.metrics.RecordInstrument(metrics.OutcomeFailed)
		entry.WithError(err).Warn("Instrument failed")
	}
}
