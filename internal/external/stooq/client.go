package stooq

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/wonny/ideagen/internal/contracts"
	"github.com/wonny/ideagen/pkg/config"
	"github.com/wonny/ideagen/pkg/httputil"
	"github.com/wonny/ideagen/pkg/logger"
	"github.com/wonny/ideagen/pkg/redis"
)

// ErrNoData is returned when Stooq answers without any rows
var ErrNoData = errors.New("stooq: no data")

// Client fetches daily history CSVs from Stooq
// ⭐ SSOT: Stooq 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	breaker    *gobreaker.CircuitBreaker
	cache      *redis.Cache
	cacheTTL   time.Duration
	logger     *logger.Logger
	baseURL    string
	now        func() time.Time
}

var _ contracts.PriceProvider = (*Client)(nil)

// NewClient creates a new Stooq client; cache may be nil
func NewClient(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	failures := uint32(1)
	if cfg.Stooq.BreakerFailures > 0 {
		failures = uint32(cfg.Stooq.BreakerFailures)
	}

	settings := gobreaker.Settings{
		Name:     "stooq",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: sourceHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: httpClient,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		cache:      cache,
		cacheTTL:   cfg.Redis.CacheTTL,
		logger:     log.WithStage(contracts.StageFetch),
		baseURL:    strings.TrimRight(cfg.Stooq.BaseURL, "/"),
		now:        time.Now,
	}
}

// sourceHealthy reports whether err leaves the source usable for other symbols.
// A 4xx other than 429 is about the requested symbol, not the source.
func sourceHealthy(err error) bool {
	if err == nil {
		return true
	}
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return !httputil.IsRetryableError(statusErr.StatusCode)
	}
	return false
}

// Fetch downloads and parses the full history of one symbol
func (c *Client) Fetch(ctx context.Context, symbol, interval string) (*contracts.Series, error) {
	key := redis.SeriesKey(symbol, interval, c.now().UTC().Format("2006-01-02"))

	if c.cache != nil {
		var body string
		found, err := c.cache.Get(ctx, key, &body)
		if err != nil {
			c.logger.WithSymbol(symbol).WithError(err).Warn("Series cache read failed")
		}
		if found {
			series, err := Parse(strings.NewReader(body), symbol, interval)
			if err == nil {
				c.logger.WithSymbol(symbol).WithField("bars", series.Len()).Debug("Series served from cache")
				return series, nil
			}
		}
	}

	body, err := c.download(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}

	series, err := Parse(strings.NewReader(body), symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", symbol, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			c.logger.WithSymbol(symbol).WithError(err).Warn("Series cache write failed")
		}
	}

	c.logger.WithSymbol(symbol).WithFields(map[string]interface{}{
		"bars":   series.Len(),
		"volume": series.HasVolume,
	}).Debug("Series fetched")

	return series, nil
}

func (c *Client) download(ctx context.Context, symbol, interval string) (string, error) {
	params := url.Values{}
	params.Set("s", symbol)
	params.Set("i", interval)
	fullURL := fmt.Sprintf("%s/q/d/l/?%s", c.baseURL, params.Encode())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.GetBody(ctx, fullURL)
	})
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", symbol, err)
	}

	return string(result.([]byte)), nil
}
