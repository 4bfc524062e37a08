package commands

import (
	"context"
	"fmt"

	"github.com/wonny/ideagen/internal/external/stooq"
	"github.com/wonny/ideagen/internal/metrics"
	"github.com/wonny/ideagen/internal/pipeline"
	"github.com/wonny/ideagen/internal/sink"
	"github.com/wonny/ideagen/internal/strategyconfig"
	"github.com/wonny/ideagen/pkg/config"
	"github.com/wonny/ideagen/pkg/httputil"
	"github.com/wonny/ideagen/pkg/logger"
	"github.com/wonny/ideagen/pkg/redis"
)

// app holds the wired dependencies shared by build and schedule
type app struct {
	cfg      *config.Config
	strategy *strategyconfig.Config
	logger   *logger.Logger
	metrics  *metrics.Recorder
	files    *sink.FileSink
	engine   *pipeline.Engine

	redis *redis.Client
	sinks sink.Multi
}

// loadStrategy reads the strategy YAML, or the built-in defaults when path is empty
func loadStrategy(path string) (*strategyconfig.Config, error) {
	if path == "" {
		cfg := strategyconfig.Default()
		if err := strategyconfig.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, _, err := strategyconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp wires provider, sinks and engine from the environment
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	strat, err := loadStrategy(cfg.StrategyConfig)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}
	for _, w := range strategyconfig.Warn(strat) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}
	cache := redis.NewCache(rdb, "ideagen")

	httpClient := httputil.NewWithTimeout(log, cfg.Stooq.Timeout).
		DisableRetry().
		WithRateLimit(cfg.Stooq.RateLimit, 1)
	provider := stooq.NewClient(cfg, httpClient, cache, log)

	files, err := sink.NewFileSink(cfg.OutputDir, log)
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	sinks := sink.Multi{files}
	if cfg.Kafka.Enabled() {
		ks, err := sink.NewKafkaSink(cfg.Kafka, log)
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("init kafka: %w", err)
		}
		sinks = append(sinks, ks)
	}

	rec := metrics.New()
	engine, err := pipeline.NewEngine(strat, provider, sinks, rec, log)
	if err != nil {
		_ = sinks.Close()
		_ = rdb.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		strategy: strat,
		logger:   log,
		metrics:  rec,
		files:    files,
		engine:   engine,
		redis:    rdb,
		sinks:    sinks,
	}, nil
}

// Close releases producer and cache connections
func (a *app) Close() {
	if err := a.sinks.Close(); err != nil {
		a.logger.WithError(err).Warn("Sink close failed")
	}
	if err := a.redis.Close(); err != nil {
		a.logger.WithError(err).Warn("Redis close failed")
	}
}
