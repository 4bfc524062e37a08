package stooq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ideagen/pkg/config"
	"github.com/wonny/ideagen/pkg/httputil"
	"github.com/wonny/ideagen/pkg/logger"
	"github.com/wonny/ideagen/pkg/redis"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume
2024-01-03,101,103,100,102,1200
2024-01-02,100,102,99,101,1000
2024-01-04,102,104,101,,1300
2024-01-05,103,105,102,104,1400
`

func newTestClient(t *testing.T, handler http.HandlerFunc, cache *redis.Cache) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Stooq: config.StooqConfig{
			BaseURL:         srv.URL,
			Timeout:         5 * time.Second,
			BreakerFailures: 2,
		},
		Redis: config.RedisConfig{CacheTTL: time.Hour},
	}
	httpClient := httputil.NewWithTimeout(logger.Nop(), cfg.Stooq.Timeout).DisableRetry()
	client := NewClient(cfg, httpClient, cache, logger.Nop())
	client.now = func() time.Time { return time.Date(2024, 1, 5, 22, 0, 0, 0, time.UTC) }
	return client
}

func TestFetch_Success(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(sampleCSV))
	}, nil)

	series, err := client.Fetch(context.Background(), "aapl.us", "d")
	require.NoError(t, err)

	assert.Equal(t, "/q/d/l/", gotPath)
	assert.Equal(t, "i=d&s=aapl.us", gotQuery)
	assert.Equal(t, "aapl.us", series.Symbol)
	assert.True(t, series.HasVolume)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, "2024-01-02", series.Bars[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-01-05", series.Bars[2].Date.Format("2006-01-02"))
	assert.Equal(t, 1400.0, series.Bars[2].Volume)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "oops"},
		{name: "not found", status: http.StatusNotFound, body: ""},
		{name: "no data", status: http.StatusOK, body: "No data"},
		{name: "empty body", status: http.StatusOK, body: ""},
		{name: "missing column", status: http.StatusOK, body: "Date,Open,High,Close\n2024-01-02,1,2,1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			series, err := client.Fetch(context.Background(), "zzzz.us", "d")
			assert.Error(t, err)
			assert.Nil(t, series)
		})
	}
}

func TestFetch_BreakerOpens(t *testing.T) {
	var hits int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	for i := 0; i < 2; i++ {
		_, err := client.Fetch(context.Background(), "spy.us", "d")
		require.Error(t, err)
	}

	_, err := client.Fetch(context.Background(), "spy.us", "d")
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetch_UnknownSymbolsKeepBreakerClosed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "aapl.us" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}, nil)

	for _, sym := range []string{"bad1.us", "bad2.us", "bad3.us"} {
		_, err := client.Fetch(context.Background(), sym, "d")
		require.Error(t, err)

		var statusErr *httputil.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	}

	series, err := client.Fetch(context.Background(), "aapl.us", "d")
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, gobreaker.StateClosed, client.breaker.State())
}

func TestSourceHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"not found", &httputil.StatusError{StatusCode: http.StatusNotFound}, true},
		{"wrapped bad request", fmt.Errorf("fetch x: %w", &httputil.StatusError{StatusCode: http.StatusBadRequest}), true},
		{"too many requests", &httputil.StatusError{StatusCode: http.StatusTooManyRequests}, false},
		{"bad gateway", &httputil.StatusError{StatusCode: http.StatusBadGateway}, false},
		{"transport", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sourceHealthy(tt.err))
		})
	}
}

func TestFetch_CacheHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := redis.NewCache(redis.NewFromRedis(db), "ideagen")
	mock.ExpectGet("ideagen:cache:series:spy.us:d:2024-01-05").
		SetVal(`"Date,Open,High,Low,Close\n2024-01-02,1,2,0.5,1.5\n"`)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called on cache hit")
	}, cache)

	series, err := client.Fetch(context.Background(), "spy.us", "d")
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
	assert.False(t, series.HasVolume)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetch_CacheMissStoresBody(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := redis.NewCache(redis.NewFromRedis(db), "ideagen")
	mock.ExpectGet("ideagen:cache:series:spy.us:d:2024-01-05").RedisNil()
	mock.Regexp().ExpectSet("ideagen:cache:series:spy.us:d:2024-01-05", `.*`, time.Hour).SetVal("OK")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}, cache)

	series, err := client.Fetch(context.Background(), "spy.us", "d")
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantBars   int
		wantVolume bool
		wantCloses []float64
	}{
		{
			name:       "lowercase headers without volume",
			body:       "date,open,high,low,close\n2024-01-02,1,2,0.5,1.5\n",
			wantBars:   1,
			wantCloses: []float64{1.5},
		},
		{
			name:       "duplicate date keeps last row",
			body:       "Date,Open,High,Low,Close,Volume\n2024-01-02,1,2,0.5,1.5,10\n2024-01-02,1,2,0.5,1.7,10\n",
			wantBars:   1,
			wantVolume: true,
			wantCloses: []float64{1.7},
		},
		{
			name:       "unsorted rows are sorted",
			body:       "Date,Open,High,Low,Close\n2024-01-03,1,2,0.5,3\n2024-01-02,1,2,0.5,2\n",
			wantBars:   2,
			wantCloses: []float64{2, 3},
		},
		{
			name:       "bad rows dropped",
			body:       "Date,Open,High,Low,Close,Volume\nbad,1,2,0.5,1.5,10\n2024-01-02,x,2,0.5,1.5,10\n2024-01-03,1,2,0.5,NaN,10\n2024-01-04,1,2,0.5,1.5,\n2024-01-05,1,2,0.5,1.9,10\n",
			wantBars:   1,
			wantVolume: true,
			wantCloses: []float64{1.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Parse(strings.NewReader(tt.body), "x.us", "d")
			require.NoError(t, err)
			require.Equal(t, tt.wantBars, series.Len())
			assert.Equal(t, tt.wantVolume, series.HasVolume)
			for i, want := range tt.wantCloses {
				assert.Equal(t, want, series.Bars[i].Close)
			}
		})
	}
}

func TestParse_OnlyBadRows(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Open,High,Low,Close\n2024-01-02,,,,\n"), "x.us", "d")
	assert.ErrorIs(t, err, ErrNoData)
}
